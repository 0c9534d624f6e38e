package promote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/logging"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/pkginfo"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/report"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/selector"
)

// Prompter asks the user to pick an option from a menu.
type Prompter interface {
	Choose(ctx context.Context, title string, menu *selector.Menu) (selector.Option, error)
}

// Options controls a single promotion.
type Options struct {
	// Policy and Package select by id or name; the zero selector asks the
	// user.
	Policy  jss.Selector
	Package jss.Selector
	// UpdateName rewrites the version in the policy name.
	UpdateName bool
	// DryRun computes the change without saving it.
	DryRun bool
	// Force skips the version check.
	Force bool
}

// Result describes a computed, and unless DryRun saved, promotion.
type Result struct {
	Plan *Plan
	// Diff is a unified diff of the policy document.
	Diff string
	// Document is the updated policy XML.
	Document string
	DryRun   bool
	Saved    bool
	Warnings []error
	// FlushLogs is set when the policy logs should be flushed so that
	// computers run the policy again.
	FlushLogs bool
	LogURL    string
}

// Promoter replaces the package a policy installs.
type Promoter struct {
	Repo     jss.Repository
	Prompter Prompter
	Logger   *slog.Logger
	// Progress, if set, reports retrieval of every policy.
	Progress func(total int) func()
	// LogURL, if set, returns the log page of a policy.
	LogURL func(id int) string
}

// Promote resolves the policy and packages, plans the change and saves it
// unless opts.DryRun is set. Nothing is written before the single Save.
func (p *Promoter) Promote(ctx context.Context, opts Options) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	summaries, err := p.Repo.List(ctx, jss.Package)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	packages := make([]pkginfo.Record, len(summaries))
	for i, s := range summaries {
		packages[i] = pkginfo.NewRecord(s.ID, s.Name)
	}

	policy, err := p.resolvePolicy(ctx, opts.Policy, packages)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved policy", "id", policy.ID(), "name", policy.Name())

	current, err := currentPackage(policy, packages)
	if err != nil {
		return nil, err
	}
	logger.Debug("current package", "id", current.ID, "name", current.Filename, "parsed", current.Valid())

	replacement, err := p.resolvePackage(ctx, opts.Package, current, packages, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("replacement package", "id", replacement.ID, "name", replacement.Filename)

	var warnings []error
	if !opts.Force {
		switch {
		case !current.Valid():
			warnings = append(warnings, fmt.Errorf("cannot read a version from %q; skipping version check", current.Filename))
		case !replacement.NewerThan(current):
			return nil, &VersionError{Current: current, Replacement: replacement}
		}
	}

	plan, err := NewPlan(policy, current, replacement, opts.UpdateName)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, plan.Warnings...)

	document := plan.Updated.XML()
	diff, err := report.Diff(
		fmt.Sprintf("policy %d (current)", policy.ID()), policy.XML(),
		fmt.Sprintf("policy %d (promoted)", policy.ID()), document)
	if err != nil {
		return nil, fmt.Errorf("failed to diff policy: %w", err)
	}

	result := &Result{
		Plan:     plan,
		Diff:     diff,
		Document: document,
		DryRun:   opts.DryRun,
		Warnings: warnings,
	}
	if opts.DryRun {
		return result, nil
	}

	if err := p.Repo.Save(ctx, plan.Updated); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSave, policy.Name(), err)
	}
	result.Saved = true
	logger.Debug("saved policy", "id", policy.ID())

	if NeedsLogFlush(plan.Updated) {
		result.FlushLogs = true
		if p.LogURL != nil {
			result.LogURL = p.LogURL(policy.ID())
		}
	}
	return result, nil
}

func (p *Promoter) resolvePolicy(ctx context.Context, sel jss.Selector, packages []pkginfo.Record) (*jss.Object, error) {
	if !sel.IsZero() {
		policy, err := p.Repo.Get(ctx, jss.Policy, sel)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", sel, err)
		}
		return policy, nil
	}

	policies, err := jss.RetrieveAll(ctx, p.Repo, jss.Policy, p.Progress)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve policies: %w", err)
	}
	installing := InstallingPolicies(policies)
	if len(installing) == 0 {
		return nil, fmt.Errorf("no policy to promote: %w", ErrNoPackage)
	}

	menu := selector.NewMenu(
		policyOptions(UpdatablePolicies(policies, packages)),
		policyOptions(installing))
	choice, err := p.choose(ctx, "Policies with newer packages available", menu)
	if err != nil {
		return nil, err
	}
	for _, policy := range installing {
		if policy.ID() == choice.ID {
			return policy, nil
		}
	}
	return nil, fmt.Errorf("policy id %d: %w", choice.ID, jss.ErrNotFound)
}

func (p *Promoter) resolvePackage(ctx context.Context, sel jss.Selector, current pkginfo.Record, packages []pkginfo.Record, logger *slog.Logger) (pkginfo.Record, error) {
	if !sel.IsZero() {
		obj, err := p.Repo.Get(ctx, jss.Package, sel)
		if err != nil {
			return pkginfo.Record{}, fmt.Errorf("package %s: %w", sel, err)
		}
		return pkginfo.NewRecord(obj.ID(), obj.Name()), nil
	}

	set := Match(current, packages)
	for _, r := range set.Unparsed {
		logger.Debug("skipping package with unrecognized name", "id", r.ID, "name", r.Filename)
	}

	var defaultID int
	if newest, ok := set.Newest(); ok {
		defaultID = newest.ID
	}

	all := append([]pkginfo.Record(nil), packages...)
	SortRecords(all)

	menu := selector.NewMenu(
		packageOptions(set.Candidates, current.ID, defaultID),
		packageOptions(all, current.ID, defaultID))
	choice, err := p.choose(ctx, fmt.Sprintf("Packages newer than %s", current.Filename), menu)
	if err != nil {
		return pkginfo.Record{}, err
	}
	for _, r := range all {
		if r.ID == choice.ID {
			return r, nil
		}
	}
	return pkginfo.Record{}, fmt.Errorf("package id %d: %w", choice.ID, jss.ErrNotFound)
}

func (p *Promoter) choose(ctx context.Context, title string, menu *selector.Menu) (selector.Option, error) {
	if p.Prompter == nil {
		return selector.Option{}, fmt.Errorf("no terminal to choose from: %w", selector.ErrAborted)
	}
	return p.Prompter.Choose(ctx, title, menu)
}

// currentPackage returns the record of the first package the policy
// installs, preferring the server's package list for its filename.
func currentPackage(policy *jss.Object, packages []pkginfo.Record) (pkginfo.Record, error) {
	refs := policy.References(PackagesPath)
	if len(refs) == 0 {
		return pkginfo.Record{}, fmt.Errorf("policy %q: %w", policy.Name(), ErrNoPackage)
	}
	ref := refs[0]
	for _, r := range packages {
		if r.ID == ref.ID() {
			return r, nil
		}
	}
	return pkginfo.NewRecord(ref.ID(), ref.Name()), nil
}

func policyOptions(policies []*jss.Object) []selector.Option {
	options := make([]selector.Option, len(policies))
	for i, policy := range policies {
		options[i] = selector.Option{ID: policy.ID(), Label: policy.Name()}
	}
	return options
}

func packageOptions(records []pkginfo.Record, currentID, defaultID int) []selector.Option {
	options := make([]selector.Option, len(records))
	for i, r := range records {
		option := selector.Option{ID: r.ID, Label: r.Filename}
		if r.ID == currentID {
			option.Flags = append(option.Flags, selector.FlagCurrent)
		}
		if defaultID != 0 && r.ID == defaultID {
			option.Flags = append(option.Flags, selector.FlagDefault)
		}
		options[i] = option
	}
	return options
}
