package ui

import (
	"github.com/schollz/progressbar/v3"
)

// Progress is a counter bar for retrieving many objects.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a bar for total steps.
func NewProgress(total int, description string) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(errOut),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

// Step advances the bar by one.
func (p *Progress) Step() {
	_ = p.bar.Add(1)
}

// Finish completes and clears the bar.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}

// ProgressFunc adapts a bar to the callback shape used when retrieving
// every object of a type: it receives the total and returns the step func.
func ProgressFunc(description string) func(total int) func() {
	return func(total int) func() {
		p := NewProgress(total, description)
		return p.Step
	}
}
