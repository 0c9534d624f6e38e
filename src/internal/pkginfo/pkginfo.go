// Package pkginfo extracts the product name and version from package
// filenames such as "Goat Simulator-1.3.1.pkg".
package pkginfo

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/version"
)

// Extension is one of the recognized package file extensions.
type Extension string

const (
	// ExtensionPackage is a flat installer package
	ExtensionPackage Extension = ".pkg"
	// ExtensionZippedPackage is a bundle package wrapped in a zip archive
	ExtensionZippedPackage Extension = ".pkg.zip"
	// ExtensionDiskImage is a disk image
	ExtensionDiskImage Extension = ".dmg"
)

// ErrParse is returned when a filename does not follow the
// "<product><separator><version><extension>" naming convention.
var ErrParse = errors.New("filename does not match package naming convention")

// The product is made of word characters, whitespace and hyphens. A space,
// hyphen or underscore separates it from the version, which must start with
// a digit. The extension must end the name.
var packagePattern = regexp.MustCompile(
	`^(?P<product>[\w\s\-]+)(?P<separator>[\s\-_])(?P<version>\d+[\w.\-]*)(?P<extension>\.(?:pkg(?:\.zip)?|dmg))$`)

// Info is the structured form of a package filename.
type Info struct {
	Product   string
	Separator string
	Version   version.Version
	Extension Extension
}

// Parse splits a package filename into its product, version and extension.
func Parse(filename string) (Info, error) {
	match := packagePattern.FindStringSubmatch(filename)
	if match == nil {
		return Info{}, fmt.Errorf("%w: %q", ErrParse, filename)
	}

	return Info{
		Product:   match[packagePattern.SubexpIndex("product")],
		Separator: match[packagePattern.SubexpIndex("separator")],
		Version:   version.Parse(match[packagePattern.SubexpIndex("version")]),
		Extension: Extension(match[packagePattern.SubexpIndex("extension")]),
	}, nil
}

// Record is a package known to the server together with its parsed name.
// When the filename does not parse, Err is set and Info is zero.
type Record struct {
	ID       int
	Filename string
	Info     Info
	Err      error
}

// NewRecord builds a record from a server id and package filename.
func NewRecord(id int, filename string) Record {
	info, err := Parse(filename)
	return Record{ID: id, Filename: filename, Info: info, Err: err}
}

// Valid reports whether the filename parsed.
func (r Record) Valid() bool {
	return r.Err == nil
}

// Product returns the parsed product name, or "" for invalid records.
func (r Record) Product() string {
	return r.Info.Product
}

// Version returns the parsed version, or the zero version for invalid records.
func (r Record) Version() version.Version {
	return r.Info.Version
}

// NewerThan reports whether both records parse and r has the strictly
// greater version.
func (r Record) NewerThan(other Record) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return r.Info.Version.Compare(other.Info.Version) > 0
}

func (r Record) String() string {
	return r.Filename
}
