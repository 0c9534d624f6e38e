// Package jss talks to the Jamf Pro Classic API (JSSResource) and models
// the XML documents it returns.
package jss

import (
	"context"
	"fmt"
	"strconv"
)

// Type describes a Classic API object type.
type Type struct {
	// Name is the element name of a single object (e.g. "policy")
	Name string
	// Path is the resource path under /JSSResource (e.g. "policies")
	Path string
	// DisplayName is used in messages
	DisplayName string
}

// Object types used by jsshelper.
var (
	Category                         = Type{Name: "category", Path: "categories", DisplayName: "category"}
	Computer                         = Type{Name: "computer", Path: "computers", DisplayName: "computer"}
	ComputerConfiguration            = Type{Name: "computer_configuration", Path: "computerconfigurations", DisplayName: "imaging configuration"}
	ComputerGroup                    = Type{Name: "computer_group", Path: "computergroups", DisplayName: "computer group"}
	MobileDevice                     = Type{Name: "mobile_device", Path: "mobiledevices", DisplayName: "mobile device"}
	MobileDeviceConfigurationProfile = Type{Name: "configuration_profile", Path: "mobiledeviceconfigurationprofiles", DisplayName: "mobile device configuration profile"}
	MobileDeviceGroup                = Type{Name: "mobile_device_group", Path: "mobiledevicegroups", DisplayName: "mobile device group"}
	OSXConfigurationProfile          = Type{Name: "os_x_configuration_profile", Path: "osxconfigurationprofiles", DisplayName: "configuration profile"}
	Package                          = Type{Name: "package", Path: "packages", DisplayName: "package"}
	Policy                           = Type{Name: "policy", Path: "policies", DisplayName: "policy"}
)

func (t Type) String() string {
	return t.DisplayName
}

// Summary is an entry of an object list: just the id and name.
type Summary struct {
	ID   int
	Name string
}

// Selector identifies an object by id or exact name.
// The zero value selects nothing.
type Selector struct {
	ID   int
	Name string
}

// ByID selects an object by server id.
func ByID(id int) Selector {
	return Selector{ID: id}
}

// ByName selects an object by exact name.
func ByName(name string) Selector {
	return Selector{Name: name}
}

// ParseSelector treats an all-digit argument as an id and anything else as
// a name. An empty argument yields the zero selector.
func ParseSelector(arg string) Selector {
	if arg == "" {
		return Selector{}
	}
	if id, err := strconv.Atoi(arg); err == nil && id > 0 && strconv.Itoa(id) == arg {
		return ByID(id)
	}
	return ByName(arg)
}

// IsZero reports whether the selector is absent.
func (s Selector) IsZero() bool {
	return s.ID == 0 && s.Name == ""
}

func (s Selector) String() string {
	if s.ID != 0 {
		return fmt.Sprintf("id %d", s.ID)
	}
	return fmt.Sprintf("%q", s.Name)
}

// Repository is the object store jsshelper reads from and writes to.
type Repository interface {
	// List returns the id and name of every object of a type.
	List(ctx context.Context, t Type) ([]Summary, error)
	// Get fetches the full document of one object. Returns an error
	// wrapping ErrNotFound if the object does not exist.
	Get(ctx context.Context, t Type, sel Selector) (*Object, error)
	// Save writes an object back to the server.
	Save(ctx context.Context, obj *Object) error
}
