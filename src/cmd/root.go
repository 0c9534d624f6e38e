package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose  bool
	insecure bool
)

var rootCmd = &cobra.Command{
	Use:   "jsshelper",
	Short: "Query and update objects on a Jamf Pro server",
	Long: `jsshelper queries a Jamf Pro server through the Classic API.

It lists and searches objects, reports which policies and profiles are
scoped to a group, scopes policies in bulk, and promotes a policy to a
newer version of the package it installs.

Connection settings come from 'jsshelper configure' or from the
JSS_URL, JSS_USERNAME and JSS_PASSWORD environment variables.

Examples:
  jsshelper policy "Install*"
  jsshelper scoped Testing
  jsshelper promote "Install Goat Simulator-1.2.0" --update_name`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the code matching the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(handleError(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and decisions to stderr")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
}
