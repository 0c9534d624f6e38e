// Package scope answers which policies and profiles target a group and
// edits policy scope.
package scope

import (
	"context"
	"fmt"
	"strings"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/report"
)

// Container is an object type that carries a <scope> element.
type Container struct {
	Type    jss.Type
	Heading string
}

// Kind groups the paths used to scope to computers or mobile devices.
type Kind struct {
	// Group is the group object type.
	Group jss.Type
	// GroupPath lists the scoped groups of a container.
	GroupPath string
	// ExclusionPath lists the excluded groups of a container.
	ExclusionPath string
	// AllPath is "true" when a container targets every device.
	AllPath  string
	AllLabel string
	// Scoped and Excluded are the container types searched by each report.
	Scoped   []Container
	Excluded []Container
}

// Computers scopes policies and macOS configuration profiles.
var Computers = Kind{
	Group:         jss.ComputerGroup,
	GroupPath:     "scope/computer_groups/computer_group",
	ExclusionPath: "scope/exclusions/computer_groups/computer_group",
	AllPath:       "scope/all_computers",
	AllLabel:      "all computers",
	Scoped: []Container{
		{Type: jss.Policy, Heading: "Policies"},
		{Type: jss.OSXConfigurationProfile, Heading: "Configuration profiles"},
	},
	Excluded: []Container{
		{Type: jss.Policy, Heading: "Policies"},
		{Type: jss.OSXConfigurationProfile, Heading: "Configuration Profiles"},
	},
}

// MobileDevices scopes mobile device configuration profiles.
var MobileDevices = Kind{
	Group:         jss.MobileDeviceGroup,
	GroupPath:     "scope/mobile_device_groups/mobile_device_group",
	ExclusionPath: "scope/exclusions/mobile_device_groups/mobile_device_group",
	AllPath:       "scope/all_mobile_devices",
	AllLabel:      "all mobile devices",
	Scoped: []Container{
		{Type: jss.MobileDeviceConfigurationProfile, Heading: "Profiles"},
	},
	Excluded: []Container{
		{Type: jss.MobileDeviceConfigurationProfile, Heading: "Mobile Device Configuration Profiles"},
	},
}

// ScopedTo returns the containers that list group in their scope.
func ScopedTo(containers []*jss.Object, kind Kind, group jss.Summary) []*jss.Object {
	return jss.FindReferencing(containers, kind.GroupPath, []jss.Summary{group})
}

// ExcludedFrom returns the containers that exclude group from their scope.
func ExcludedFrom(containers []*jss.Object, kind Kind, group jss.Summary) []*jss.Object {
	return jss.FindReferencing(containers, kind.ExclusionPath, []jss.Summary{group})
}

// ScopedToAll returns the containers targeting every device.
func ScopedToAll(containers []*jss.Object, kind Kind) []*jss.Object {
	var result []*jss.Object
	for _, c := range containers {
		if c.FindText(kind.AllPath) == "true" {
			result = append(result, c)
		}
	}
	return result
}

// Scanner builds scope reports, fetching each container type once.
type Scanner struct {
	Repo jss.Repository
	// Progress, if set, returns a progress callback for retrieving all
	// objects of a type.
	Progress func(t jss.Type) func(total int) func()

	cache map[string][]*jss.Object
}

// NewScanner returns a scanner reading from repo.
func NewScanner(repo jss.Repository) *Scanner {
	return &Scanner{Repo: repo}
}

func (s *Scanner) all(ctx context.Context, t jss.Type) ([]*jss.Object, error) {
	if objects, ok := s.cache[t.Path]; ok {
		return objects, nil
	}
	var progress func(total int) func()
	if s.Progress != nil {
		progress = s.Progress(t)
	}
	objects, err := jss.RetrieveAll(ctx, s.Repo, t, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s objects: %w", t, err)
	}
	if s.cache == nil {
		s.cache = map[string][]*jss.Object{}
	}
	s.cache[t.Path] = objects
	return objects, nil
}

func (s *Scanner) group(ctx context.Context, kind Kind, sel jss.Selector) (jss.Summary, error) {
	group, err := s.Repo.Get(ctx, kind.Group, sel)
	if err != nil {
		return jss.Summary{}, fmt.Errorf("%s %s: %w", kind.Group, sel, err)
	}
	return group.Summary(), nil
}

// Scoped reports the containers scoped to a group and those scoped to all
// devices.
func (s *Scanner) Scoped(ctx context.Context, kind Kind, sel jss.Selector) (string, error) {
	group, err := s.group(ctx, kind, sel)
	if err != nil {
		return "", err
	}

	var sections []string
	for _, c := range kind.Scoped {
		objects, err := s.all(ctx, c.Type)
		if err != nil {
			return "", err
		}
		sections = append(sections,
			report.Results(fmt.Sprintf("%s scoped to %s", c.Heading, group.Name),
				jss.Summaries(ScopedTo(objects, kind, group))),
			report.Results(fmt.Sprintf("%s scoped to %s", c.Heading, kind.AllLabel),
				jss.Summaries(ScopedToAll(objects, kind))))
	}
	return strings.Join(sections, "\n"), nil
}

// Excluded reports the containers that exclude a group.
func (s *Scanner) Excluded(ctx context.Context, kind Kind, sel jss.Selector) (string, error) {
	group, err := s.group(ctx, kind, sel)
	if err != nil {
		return "", err
	}

	var sections []string
	for _, c := range kind.Excluded {
		objects, err := s.all(ctx, c.Type)
		if err != nil {
			return "", err
		}
		sections = append(sections, report.Results(
			fmt.Sprintf("%s with %s excluded from scope.", c.Heading, group.Name),
			jss.Summaries(ExcludedFrom(objects, kind, group))))
	}
	return strings.Join(sections, "\n"), nil
}

// Diff returns a unified diff of the Scoped reports of two groups.
func (s *Scanner) Diff(ctx context.Context, kind Kind, first, second jss.Selector) (string, error) {
	a, err := s.Scoped(ctx, kind, first)
	if err != nil {
		return "", err
	}
	b, err := s.Scoped(ctx, kind, second)
	if err != nil {
		return "", err
	}
	return report.Diff(first.String(), a, second.String(), b)
}

// Installs reports the policies and imaging configurations that install
// any package matching search.
func (s *Scanner) Installs(ctx context.Context, search string) (string, error) {
	packages, err := jss.SearchSummaries(ctx, s.Repo, jss.Package, search)
	if err != nil {
		return "", err
	}

	policies, err := s.all(ctx, jss.Policy)
	if err != nil {
		return "", err
	}
	configs, err := s.all(ctx, jss.ComputerConfiguration)
	if err != nil {
		return "", err
	}

	var policyResults, configResults []*jss.Object
	if len(packages) > 0 {
		policyResults = jss.FindReferencing(policies, "package_configuration/packages/package", packages)
		configResults = jss.FindReferencing(configs, "packages/package", packages)
	}
	return report.Results(fmt.Sprintf("Policies which install '%s'", search), jss.Summaries(policyResults)) +
		"\n" +
		report.Results(fmt.Sprintf("Imaging configs which install '%s'", search), jss.Summaries(configResults)), nil
}
