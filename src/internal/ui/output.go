// Package ui writes user-facing output: colored status lines, spinners,
// progress bars and menu styling.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr

	successColor   = color.New(color.FgGreen, color.Bold)
	errorColor     = color.New(color.FgRed, color.Bold)
	warningColor   = color.New(color.FgYellow, color.Bold)
	infoColor      = color.New(color.FgCyan)
	headerColor    = color.New(color.Bold)
	highlightColor = color.New(color.FgMagenta, color.Bold)
	dimColor       = color.New(color.Faint)
)

// SetOutput redirects standard and error output, returning a function that
// restores the previous writers. Color is disabled while redirected.
func SetOutput(stdout, stderr io.Writer) (restore func()) {
	prevOut, prevErr, prevNoColor := out, errOut, color.NoColor
	out, errOut = stdout, stderr
	DisableColor()
	return func() {
		out, errOut = prevOut, prevErr
		color.NoColor = prevNoColor
	}
}

// DisableColor turns off ANSI styling for both color and lipgloss output.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Output returns the current standard output writer.
func Output() io.Writer {
	return out
}

// Printf writes unstyled text to standard output.
func Printf(format string, args ...any) {
	fmt.Fprintf(out, format, args...)
}

// Println writes a line to standard output.
func Println(args ...any) {
	fmt.Fprintln(out, args...)
}

// Header prints a bold heading.
func Header(format string, args ...any) {
	fmt.Fprintln(out, headerColor.Sprintf(format, args...))
}

// Info prints an informational line.
func Info(format string, args ...any) {
	fmt.Fprintln(out, infoColor.Sprintf(format, args...))
}

// Success prints a success line prefixed with a check mark.
func Success(format string, args ...any) {
	fmt.Fprintln(out, successColor.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

// Warning prints a warning to standard error.
func Warning(format string, args ...any) {
	fmt.Fprintln(errOut, warningColor.Sprint("! ")+fmt.Sprintf(format, args...))
}

// Error prints an error to standard error.
func Error(format string, args ...any) {
	fmt.Fprintln(errOut, errorColor.Sprint("✗ ")+fmt.Sprintf(format, args...))
}

// Highlight returns text styled for emphasis.
func Highlight(text string) string {
	return highlightColor.Sprint(text)
}

// Dim returns de-emphasized text.
func Dim(text string) string {
	return dimColor.Sprint(text)
}
