package scope

import (
	"context"
	"fmt"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
)

// BatchResult is the outcome for one policy of a batch scope.
type BatchResult struct {
	Policy jss.Summary
	// Added lists the groups that were not already scoped.
	Added []jss.Summary
	Saved bool
	Err   error
}

// BatchScope adds every group to the computer group scope of every policy
// matched by the searches. Policies already scoped to all groups are left
// untouched. With dryRun nothing is saved. report, if set, is called as
// each policy finishes.
func BatchScope(ctx context.Context, repo jss.Repository, groups []jss.Summary, searches []string, dryRun bool, report func(BatchResult)) ([]BatchResult, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no groups to scope: %w", jss.ErrNotFound)
	}

	var results []BatchResult
	for _, search := range searches {
		policies, err := jss.Search(ctx, repo, jss.Policy, search)
		if err != nil {
			return results, fmt.Errorf("policy search %q: %w", search, err)
		}
		if len(policies) == 0 {
			return results, fmt.Errorf("policy %q: %w", search, jss.ErrNotFound)
		}

		for _, policy := range policies {
			result := BatchResult{Policy: policy.Summary()}
			for _, group := range groups {
				if _, added := policy.AddReference("scope/computer_groups", "computer_group", group); added {
					result.Added = append(result.Added, group)
				}
			}
			if len(result.Added) > 0 && !dryRun {
				result.Err = repo.Save(ctx, policy)
				result.Saved = result.Err == nil
			}
			if report != nil {
				report(result)
			}
			results = append(results, result)
		}
	}
	return results, nil
}
