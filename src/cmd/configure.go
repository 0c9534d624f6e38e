package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/config"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

var (
	configureURL          string
	configureUsername     string
	configureSavePassword bool
	configureNoVerifySSL  bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Save the server URL and credentials",
	Long: `Save the Jamf Pro server URL and API credentials to
~/.jsshelper/config/settings.json (or $JSSHELPER_ROOT/config).

Values not given as flags are prompted for, defaulting to the saved
ones. The password is only stored with --save-password; otherwise it is
asked for on each run unless JSS_PASSWORD is set. A previously saved
password is kept.

Examples:
  jsshelper configure
  jsshelper configure --url https://jss.example.com:8443 --username api`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Header("Configuring jsshelper...")

		settings, err := config.LoadSettings()
		if err != nil {
			ui.Warning("Ignoring unreadable settings: %v", err)
			settings = &config.Settings{}
		}

		updated, err := promptSettings(cmd, settings)
		if err != nil {
			return err
		}
		if err := updated.Validate(); err != nil {
			return err
		}

		spinner := ui.NewSpinner("Saving settings...")
		spinner.Start()
		if err := config.SaveSettings(updated); err != nil {
			spinner.Error("Failed to save settings")
			return &ExitError{Code: exitFailure, Err: err}
		}
		spinner.Success("Settings saved to " + config.SettingsPath())

		ui.Info("\nNext steps:")
		ui.Info("  1. Run: jsshelper policy")
		ui.Info("  2. Run: jsshelper promote")
		return nil
	},
}

// promptSettings fills settings from flags, asking on the command's input
// for anything not given.
func promptSettings(cmd *cobra.Command, settings *config.Settings) (*config.Settings, error) {
	updated := *settings
	reader := bufio.NewReader(cmd.InOrStdin())

	var err error
	if cmd.Flags().Changed("url") {
		updated.URL = configureURL
	} else if updated.URL, err = ask(reader, "Server URL", settings.URL); err != nil {
		return nil, err
	}
	updated.URL = strings.TrimRight(updated.URL, "/")

	if cmd.Flags().Changed("username") {
		updated.Username = configureUsername
	} else if updated.Username, err = ask(reader, "Username", settings.Username); err != nil {
		return nil, err
	}

	if configureSavePassword {
		password, err := readPassword("Password: ")
		if err != nil {
			return nil, err
		}
		updated.Password = password
	}

	if cmd.Flags().Changed("no-verify-ssl") {
		updated.SetVerifySSL(!configureNoVerifySSL)
	}
	return &updated, nil
}

// ask prints a prompt with the current value and reads one line. An empty
// answer keeps the current value.
func ask(reader *bufio.Reader, label, current string) (string, error) {
	if current != "" {
		ui.Printf("%s [%s]: ", label, current)
	} else {
		ui.Printf("%s: ", label)
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if answer := strings.TrimSpace(line); answer != "" {
		return answer, nil
	}
	return current, nil
}

func init() {
	configureCmd.Flags().StringVar(&configureURL, "url", "", "Server URL, e.g. https://jss.example.com:8443")
	configureCmd.Flags().StringVar(&configureUsername, "username", "", "API username")
	configureCmd.Flags().BoolVar(&configureSavePassword, "save-password", false, "Prompt for the password and store it in the settings file")
	configureCmd.Flags().BoolVar(&configureNoVerifySSL, "no-verify-ssl", false, "Do not verify the server's TLS certificate")
	rootCmd.AddCommand(configureCmd)
}
