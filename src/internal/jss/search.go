package jss

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
)

// wildcards are the shell pattern characters accepted in searches.
const wildcards = "*?[]"

// IsWildcard reports whether a search contains shell pattern characters.
func IsWildcard(search string) bool {
	return strings.ContainsAny(search, wildcards)
}

// MatchWildcard matches a name against a case-sensitive shell pattern:
// '*' matches any run of characters (including '/'), '?' a single
// character and '[seq]' / '[!seq]' a character class.
func MatchWildcard(pattern, name string) bool {
	// path.Match stops '*' at '/', which object names may contain.
	const slash = "\x00"
	pattern = strings.ReplaceAll(pattern, "/", slash)
	name = strings.ReplaceAll(name, "/", slash)
	pattern = strings.ReplaceAll(pattern, "[!", "[^")

	ok, err := path.Match(pattern, name)
	return err == nil && ok
}

// SearchSummaries resolves a search to object summaries:
//   - "" lists every object
//   - a wildcard pattern lists the objects whose name matches
//   - anything else is an id or exact name; a miss yields no results
func SearchSummaries(ctx context.Context, repo Repository, t Type, search string) ([]Summary, error) {
	if search == "" || IsWildcard(search) {
		all, err := repo.List(ctx, t)
		if err != nil {
			return nil, err
		}
		if search == "" {
			return all, nil
		}

		var result []Summary
		for _, s := range all {
			if MatchWildcard(search, s.Name) {
				result = append(result, s)
			}
		}
		return result, nil
	}

	obj, err := repo.Get(ctx, t, ParseSelector(search))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []Summary{obj.Summary()}, nil
}

// Search resolves a search like SearchSummaries but fetches full objects.
func Search(ctx context.Context, repo Repository, t Type, search string) ([]*Object, error) {
	if search != "" && !IsWildcard(search) {
		obj, err := repo.Get(ctx, t, ParseSelector(search))
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []*Object{obj}, nil
	}

	summaries, err := SearchSummaries(ctx, repo, t, search)
	if err != nil {
		return nil, err
	}
	return Retrieve(ctx, repo, t, summaries, nil)
}

// Retrieve fetches the full object for each summary. Objects deleted since
// the list was fetched are skipped. progress, if set, is called after each
// fetch.
func Retrieve(ctx context.Context, repo Repository, t Type, summaries []Summary, progress func()) ([]*Object, error) {
	result := make([]*Object, 0, len(summaries))
	for _, s := range summaries {
		obj, err := repo.Get(ctx, t, ByID(s.ID))
		if progress != nil {
			progress()
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, obj)
	}
	return result, nil
}

// RetrieveAll lists and fetches every object of a type.
func RetrieveAll(ctx context.Context, repo Repository, t Type, progress func(total int) func()) ([]*Object, error) {
	summaries, err := repo.List(ctx, t)
	if err != nil {
		return nil, err
	}
	var step func()
	if progress != nil {
		step = progress(len(summaries))
	}
	return Retrieve(ctx, repo, t, summaries, step)
}

// FindReferencing returns the containers holding a reference at refPath
// (e.g. "package_configuration/packages/package") to any of targets,
// matched by id or name.
func FindReferencing(containers []*Object, refPath string, targets []Summary) []*Object {
	var result []*Object
	for _, container := range containers {
		if referencesAny(container, refPath, targets) {
			result = append(result, container)
		}
	}
	return result
}

func referencesAny(container *Object, refPath string, targets []Summary) bool {
	for _, ref := range container.References(refPath) {
		for _, target := range targets {
			if ref.Matches(target) {
				return true
			}
		}
	}
	return false
}

// Summaries returns the summary of each object.
func Summaries(objects []*Object) []Summary {
	result := make([]Summary, len(objects))
	for i, obj := range objects {
		result[i] = obj.Summary()
	}
	return result
}

// SortSummaries orders summaries by name, then id.
func SortSummaries(summaries []Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].ID < summaries[j].ID
	})
}
