package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/pkginfo"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/promote"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/report"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "List policies that install a package with a newer version available",
	Long: `List policies that install a package for which a newer version of the
same product exists on the server. These are the policies offered first
by 'jsshelper promote'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := connectServer()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		summaries, err := srv.List(ctx, jss.Package)
		if err != nil {
			return err
		}
		packages := make([]pkginfo.Record, len(summaries))
		for i, s := range summaries {
			packages[i] = pkginfo.NewRecord(s.ID, s.Name)
		}

		policies, err := jss.RetrieveAll(ctx, srv, jss.Policy, progressFor(jss.Policy))
		if err != nil {
			return err
		}

		results := jss.Summaries(promote.UpdatablePolicies(policies, packages))
		jss.SortSummaries(results)
		ui.Printf("%s", report.Results("Policies with newer packages available", results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outdatedCmd)
}
