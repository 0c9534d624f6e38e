package cmd

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/config"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/logging"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

// server is the connection commands work against.
type server interface {
	jss.Repository
	PolicyLogURL(id int) string
}

// connectServer returns the process-wide connection. Tests replace it.
var connectServer = defaultServer

var (
	serverOnce sync.Once
	serverConn server
	serverErr  error
)

func defaultServer() (server, error) {
	serverOnce.Do(func() {
		client, err := newClient()
		if err != nil {
			serverErr = err
			return
		}
		serverConn = client
	})
	return serverConn, serverErr
}

func newClient() (*jss.Client, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if settings.Password == "" {
		password, err := readPassword(fmt.Sprintf("Password for %s at %s: ", settings.Username, settings.URL))
		if err != nil {
			return nil, err
		}
		settings.Password = password
	}

	return jss.NewClient(jss.Options{
		URL:       settings.URL,
		Username:  settings.Username,
		Password:  settings.Password,
		VerifySSL: settings.ShouldVerifySSL() && !insecure,
		Logger:    logging.New(verbose),
	})
}

// readPassword prompts on the terminal without echo.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no password configured (set " + config.PasswordEnvVar + " or run 'jsshelper configure')")
	}
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(data), nil
}

// withSpinner runs fn while a spinner shows message.
func withSpinner[T any](message string, fn func() (T, error)) (T, error) {
	spinner := ui.NewSpinner(message)
	spinner.Start()
	result, err := fn()
	spinner.Stop()
	return result, err
}

// progressFor reports retrieval of every object of a type.
func progressFor(t jss.Type) func(total int) func() {
	return ui.ProgressFunc(fmt.Sprintf("Retrieving %s objects", t))
}
