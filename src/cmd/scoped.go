package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/scope"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

func newScanner(srv server) *scope.Scanner {
	scanner := scope.NewScanner(srv)
	scanner.Progress = progressFor
	return scanner
}

func newScopedCommand(use string, kind scope.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <group>",
		Short: short,
		Long: short + `.

The group is an id or exact name. Objects scoped to every device are
listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connectServer()
			if err != nil {
				return err
			}
			out, err := newScanner(srv).Scoped(cmd.Context(), kind, jss.ParseSelector(args[0]))
			if err != nil {
				return err
			}
			ui.Printf("%s", out)
			return nil
		},
	}
}

func newExcludedCommand(use string, kind scope.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <group>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connectServer()
			if err != nil {
				return err
			}
			out, err := newScanner(srv).Excluded(cmd.Context(), kind, jss.ParseSelector(args[0]))
			if err != nil {
				return err
			}
			ui.Printf("%s", out)
			return nil
		},
	}
}

func newScopeDiffCommand(use string, kind scope.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <group1> <group2>",
		Short: short,
		Long: short + `.

Prints a unified diff of the scope reports of the two groups.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connectServer()
			if err != nil {
				return err
			}
			first, second := jss.ParseSelector(args[0]), jss.ParseSelector(args[1])
			diff, err := newScanner(srv).Diff(cmd.Context(), kind, first, second)
			if err != nil {
				return err
			}
			if diff == "" {
				ui.Info("%s and %s have the same scope.", first, second)
				return nil
			}
			ui.Printf("%s", diff)
			return nil
		},
	}
}

var installsCmd = &cobra.Command{
	Use:   "installs <package>",
	Short: "List all policies and imaging configurations which install a package",
	Long: `List all policies and imaging configurations which install a package.

The package is an id, exact name or wildcard pattern; every matching
package is searched for.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := connectServer()
		if err != nil {
			return err
		}
		out, err := newScanner(srv).Installs(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to search for %q: %w", args[0], err)
		}
		ui.Printf("%s", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(
		newScopedCommand("scoped", scope.Computers,
			"List all policies and configuration profiles scoped to a computer group"),
		newScopedCommand("md_scoped", scope.MobileDevices,
			"List all mobile device configuration profiles scoped to a mobile device group"),
		newExcludedCommand("excluded", scope.Computers,
			"List all policies and configuration profiles from which a computer group is excluded"),
		newExcludedCommand("md_excluded", scope.MobileDevices,
			"List all configuration profiles from which a mobile device group is excluded"),
		newScopeDiffCommand("scope_diff", scope.Computers,
			"Show the difference between two computer groups' scoped policies and profiles"),
		newScopeDiffCommand("md_scope_diff", scope.MobileDevices,
			"Show the difference between two mobile device groups' scoped profiles"),
		installsCmd,
	)
}
