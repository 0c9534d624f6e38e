package promote

import (
	"fmt"
	"regexp"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/pkginfo"
)

// PackagesPath locates the package references of a policy.
const PackagesPath = "package_configuration/packages/package"

// Plan is a policy edit that has not been saved.
type Plan struct {
	// Original is the policy as fetched.
	Original *jss.Object
	// Updated is a copy with the package swapped.
	Updated *jss.Object
	// Old and New are the swapped packages.
	Old, New pkginfo.Record
	// OldName and NewName are the policy name before and after.
	OldName, NewName string
	// Warnings are non-fatal problems, such as a name rewrite miss.
	Warnings []error
}

// Renamed reports whether the policy name changed.
func (p *Plan) Renamed() bool {
	return p.OldName != p.NewName
}

// NewPlan swaps the package reference matching current for replacement in
// a copy of
// policy. With rewriteName it also replaces the last "<product><sep>
// <version>" of the current package in the policy name. policy is not
// modified.
func NewPlan(policy *jss.Object, current, replacement pkginfo.Record, rewriteName bool) (*Plan, error) {
	updated := policy.Copy()

	refs := updated.References(PackagesPath)
	if len(refs) == 0 {
		return nil, fmt.Errorf("policy %q: %w", policy.Name(), ErrNoPackage)
	}
	ref := pickReference(refs, current)
	ref.Set(replacement.ID, replacement.Filename)

	plan := &Plan{
		Original: policy,
		Updated:  updated,
		Old:      current,
		New:      replacement,
		OldName:  policy.Name(),
		NewName:  policy.Name(),
	}
	if len(refs) > 1 {
		plan.Warnings = append(plan.Warnings, fmt.Errorf(
			"policy installs %d packages; only %q was replaced", len(refs), current.Filename))
	}

	if rewriteName {
		name, err := RewriteName(policy.Name(), current, replacement)
		if err != nil {
			plan.Warnings = append(plan.Warnings, err)
		} else {
			updated.SetName(name)
			plan.NewName = name
		}
	}
	return plan, nil
}

// pickReference finds the reference to current by id, then by name, falling
// back to the first one.
func pickReference(refs []jss.Reference, current pkginfo.Record) jss.Reference {
	for _, ref := range refs {
		if current.ID != 0 && ref.ID() == current.ID {
			return ref
		}
	}
	for _, ref := range refs {
		if ref.Name() == current.Filename {
			return ref
		}
	}
	return refs[0]
}

// RewriteName replaces the last occurrence of the current product and
// version in name with the replacement's, keeping the separator found in
// name.
func RewriteName(name string, current, replacement pkginfo.Record) (string, error) {
	if !current.Valid() || !replacement.Valid() {
		return name, fmt.Errorf("%q: %w", name, ErrNameRewriteMiss)
	}

	// The version must not run on into a longer one: 1.2 is not in 1.2.5.
	pattern := regexp.MustCompile(regexp.QuoteMeta(current.Product()) +
		`([\s\-_])(` + regexp.QuoteMeta(current.Version().String()) + `)(?:$|[^\w.\-])`)
	matches := pattern.FindAllStringSubmatchIndex(name, -1)
	if len(matches) == 0 {
		return name, fmt.Errorf("%q: %w", name, ErrNameRewriteMiss)
	}

	last := matches[len(matches)-1]
	separator := name[last[2]:last[3]]
	rewritten := replacement.Product() + separator + replacement.Version().String()
	return name[:last[0]] + rewritten + name[last[5]:], nil
}
