package promote

import (
	"errors"
	"fmt"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/pkginfo"
)

var (
	// ErrVersion means the replacement is not newer than the current package.
	ErrVersion = errors.New("replacement package is not newer")
	// ErrNameRewriteMiss means the policy name does not contain the
	// current package's product and version.
	ErrNameRewriteMiss = errors.New("policy name does not contain the current package version")
	// ErrSave wraps a failure to write the policy back to the server.
	ErrSave = errors.New("failed to save policy")
	// ErrNoPackage means the policy does not install a package.
	ErrNoPackage = errors.New("policy does not install a package")
)

// VersionError carries the two packages whose versions do not allow a
// promotion.
type VersionError struct {
	Current     pkginfo.Record
	Replacement pkginfo.Record
}

func (e *VersionError) Error() string {
	if !e.Replacement.Valid() {
		return fmt.Sprintf("cannot read a version from %q", e.Replacement.Filename)
	}
	return fmt.Sprintf("%s (%s) is not newer than %s (%s)",
		e.Replacement.Filename, e.Replacement.Version(),
		e.Current.Filename, e.Current.Version())
}

// Is makes errors.Is(err, ErrVersion) match.
func (e *VersionError) Is(target error) bool {
	return target == ErrVersion
}
