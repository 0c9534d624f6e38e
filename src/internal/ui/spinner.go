package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows activity while waiting on the server.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(errOut))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins animating.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop stops animating without printing anything.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// Success stops the spinner and prints a success line.
func (sp *Spinner) Success(message string) {
	sp.s.Stop()
	Success("%s", message)
}

// Error stops the spinner and prints an error line.
func (sp *Spinner) Error(message string) {
	sp.s.Stop()
	Error("%s", message)
}
