package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/scope"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

var batchScopeDryRun bool

var batchScopeCmd = &cobra.Command{
	Use:   "batch_scope <group> <policy>...",
	Short: "Scope a list of policies to a computer group",
	Long: `Scope a list of policies to a computer group.

The group is an id, name or wildcard search; every matching group is
added. Each policy argument is an id, name or wildcard search.

Example:
  jsshelper batch_scope Production "Install*" 42`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := connectServer()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		groups, err := jss.SearchSummaries(ctx, srv, jss.ComputerGroup, args[0])
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			return fmt.Errorf("computer group %q: %w", args[0], jss.ErrNotFound)
		}

		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.Name
		}
		ui.Header("Scoping to groups: %s", strings.Join(names, ", "))
		ui.Println(strings.Repeat("-", 79))

		failed := 0
		_, err = scope.BatchScope(ctx, srv, groups, args[1:], batchScopeDryRun, func(r scope.BatchResult) {
			switch {
			case r.Err != nil:
				failed++
				ui.Error("%s: %v", r.Policy.Name, r.Err)
			case len(r.Added) == 0:
				ui.Info("%s: already scoped.", r.Policy.Name)
			case batchScopeDryRun:
				ui.Info("%s: would be scoped (dry run).", r.Policy.Name)
			default:
				ui.Success("%s: Success.", r.Policy.Name)
			}
		})
		if err != nil {
			return err
		}
		if failed > 0 {
			return &ExitError{Code: exitFailure, Err: fmt.Errorf("%d policies failed to save", failed)}
		}
		return nil
	},
}

func init() {
	batchScopeCmd.Flags().BoolVar(&batchScopeDryRun, "dry-run", false, "Report the changes without saving")
	rootCmd.AddCommand(batchScopeCmd)
}
