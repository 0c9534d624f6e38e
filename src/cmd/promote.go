package cmd

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/logging"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/promote"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/selector"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

var (
	promoteUpdateName bool
	promoteDryRun     bool
	promoteForce      bool
)

var promoteCmd = &cobra.Command{
	Use:   "promote [policy] [package]",
	Short: "Update a policy to install a newer version of its package",
	Long: `Promote a package from development to production by updating an
existing policy to install a newer package.

Policy and package are ids or exact names. When the policy is omitted,
a menu lists the policies with newer packages available ('F' shows every
policy that installs a package). When the package is omitted, a menu
lists the newer versions of the installed product with the newest one as
the default.

The replacement must have a strictly newer version than the current
package unless --force is given.

With --update_name the product and version in the policy name are
replaced, keeping the separator used in the name:
  "Install Nethack-3.4.3" becomes "Install Nethack-3.4.4"

Examples:
  jsshelper promote
  jsshelper promote "Install Goat Simulator-1.2.0" --update_name
  jsshelper promote 42 "Goat Simulator-1.3.1.pkg" --dry-run`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := promote.Options{
			UpdateName: promoteUpdateName,
			DryRun:     promoteDryRun,
			Force:      promoteForce,
		}
		if len(args) > 0 {
			opts.Policy = jss.ParseSelector(args[0])
		}
		if len(args) > 1 {
			opts.Package = jss.ParseSelector(args[1])
		}
		return runPromote(cmd, opts)
	},
}

func runPromote(cmd *cobra.Command, opts promote.Options) error {
	srv, err := connectServer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if opts.Policy.IsZero() {
		ui.Info("No policy specified: building a list of policies which have newer packages available...")
	}

	promoter := &promote.Promoter{
		Repo:     srv,
		Prompter: selector.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()),
		Logger:   logging.New(verbose),
		Progress: progressFor(jss.Policy),
		LogURL:   srv.PolicyLogURL,
	}
	result, err := promoter.Promote(ctx, opts)
	if err != nil {
		return promoteFailure(err)
	}

	for _, warning := range result.Warnings {
		if errors.Is(warning, promote.ErrNameRewriteMiss) {
			ui.Warning("Unable to update policy name: %v", warning)
			continue
		}
		ui.Warning("%v", warning)
	}

	plan := result.Plan
	if plan.Renamed() {
		ui.Info("Old name: %s", plan.OldName)
		ui.Info("New name: %s", plan.NewName)
	}

	if result.DryRun {
		ui.Header("Dry run: policy %q was not saved.", plan.OldName)
		ui.Println(result.Document)
		if result.Diff != "" {
			ui.Header("Changes:")
			ui.Printf("%s", result.Diff)
		}
		return nil
	}

	ui.Success("Policy %q now installs %s (was %s).",
		plan.NewName, ui.Highlight(plan.New.Filename), plan.Old.Filename)
	if result.FlushLogs {
		ui.Warning("Remember to flush the policy logs!")
		if result.LogURL != "" {
			ui.Info("Policy logs: %s", result.LogURL)
		}
	}
	return nil
}

// promoteFailure prints a message specific to the kind of failure and
// returns the error to exit with.
func promoteFailure(err error) error {
	var versionErr *promote.VersionError
	switch {
	case errors.Is(err, selector.ErrAborted):
		ui.Warning("Cancelled; the policy was not changed.")
		return &ExitError{Code: exitCancelled, Err: err}
	case errors.As(err, &versionErr):
		ui.Error("Not promoting: %v.", versionErr)
		ui.Info("Use --force to install it anyway.")
	case errors.Is(err, promote.ErrNoPackage):
		ui.Error("Nothing to promote: %v.", err)
	case errors.Is(err, jss.ErrNotFound):
		ui.Error("Not found: %v.", err)
	case errors.Is(err, jss.ErrAuth):
		ui.Error("The server rejected the credentials: %v.", err)
	case errors.Is(err, promote.ErrSave):
		ui.Error("The server rejected the change: %v.", err)
	default:
		ui.Error("%v", err)
	}
	return &ExitError{Code: exitFailure, Err: err}
}

func init() {
	promoteCmd.Flags().BoolVarP(&promoteUpdateName, "update_name", "u", false, "Replace the package version in the policy name")
	promoteCmd.Flags().BoolVar(&promoteDryRun, "dry-run", false, "Show the updated policy without saving it")
	promoteCmd.Flags().BoolVar(&promoteForce, "force", false, "Allow a replacement that is not newer than the current package")
	rootCmd.AddCommand(promoteCmd)
}
