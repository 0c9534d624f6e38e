package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/report"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

// objectCommands are the pass-through list and search commands.
var objectCommands = []struct {
	use   string
	t     jss.Type
	short string
}{
	{"category", jss.Category, "List all categories, or search for an individual category"},
	{"computer", jss.Computer, "List all computers, or search for an individual computer"},
	{"configp", jss.OSXConfigurationProfile, "List all configuration profiles, or search for an individual profile"},
	{"group", jss.ComputerGroup, "List all computer groups, or search for an individual group"},
	{"imaging_config", jss.ComputerConfiguration, "List all imaging configurations, or search for an individual configuration"},
	{"md", jss.MobileDevice, "List all mobile devices, or search for an individual mobile device"},
	{"md_configp", jss.MobileDeviceConfigurationProfile, "List all mobile device configuration profiles, or search for an individual profile"},
	{"md_group", jss.MobileDeviceGroup, "List all mobile device groups, or search for an individual group"},
	{"package", jss.Package, "List all packages, or search for an individual package"},
	{"policy", jss.Policy, "List all policies, or search for an individual policy"},
}

func newSearchCommand(use string, t jss.Type, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [search]",
		Short: short,
		Long: fmt.Sprintf(`%s.

Without a search every %[2]s is listed. A search is an id, an exact
name, or a shell wildcard pattern (*, ? and [...]) matched against names.
A single match is printed as XML; several matches are listed.

Examples:
  jsshelper %[3]s
  jsshelper %[3]s 42
  jsshelper %[3]s "Install*"`, short, t, use),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search := ""
			if len(args) == 1 {
				search = args[0]
			}
			return runSearch(cmd, t, search)
		},
	}
}

// runSearch prints a listing for several results and the document for one.
func runSearch(cmd *cobra.Command, t jss.Type, search string) error {
	srv, err := connectServer()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	results, err := withSpinner(fmt.Sprintf("Searching %s objects...", t), func() ([]jss.Summary, error) {
		return jss.SearchSummaries(ctx, srv, t, search)
	})
	if err != nil {
		return err
	}

	switch len(results) {
	case 0:
		if search == "" {
			ui.Printf("%s", report.Results("", nil))
			return nil
		}
		ui.Error("Object: %s does not exist!", search)
		return &ExitError{Code: exitFailure, Err: fmt.Errorf("%s %q: %w", t, search, jss.ErrNotFound)}
	case 1:
		if search != "" {
			obj, err := srv.Get(ctx, t, jss.ByID(results[0].ID))
			if err != nil {
				return err
			}
			ui.Println(obj.XML())
			return nil
		}
	}

	ui.Printf("%s", report.Results("", results))
	return nil
}

func init() {
	for _, c := range objectCommands {
		rootCmd.AddCommand(newSearchCommand(c.use, c.t, c.short))
	}
}
