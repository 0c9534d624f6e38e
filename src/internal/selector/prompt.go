package selector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

// Terminal prompts on a pair of streams, usually stdin and stdout. One
// reader serves every menu shown on the terminal, so answers typed ahead
// are not lost between menus.
type Terminal struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines <-chan string
}

// NewTerminal returns a terminal reading answers from in and writing menus
// to out. Nothing is read until the first menu is shown.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Choose shows the menu and reads answers until an option is selected.
// Cancelling ctx or reaching end of input returns ErrAborted.
func (t *Terminal) Choose(ctx context.Context, title string, menu *Menu) (Option, error) {
	t.once.Do(func() { t.lines = readLines(t.in) })
	return prompt(ctx, t.lines, t.out, title, menu)
}

// Prompt shows a single menu on out, reading answers from in.
func Prompt(ctx context.Context, in io.Reader, out io.Writer, title string, menu *Menu) (Option, error) {
	return NewTerminal(in, out).Choose(ctx, title, menu)
}

func prompt(ctx context.Context, lines <-chan string, out io.Writer, title string, menu *Menu) (Option, error) {
	render(out, title, menu)
	for !menu.Done() {
		fmt.Fprint(out, hints(menu))

		var ev Event
		select {
		case <-ctx.Done():
			ev = Interrupt()
		case line, ok := <-lines:
			if !ok {
				ev = Interrupt()
			} else {
				ev = Input(line)
			}
		}

		feedback := menu.Transition(ev)
		switch {
		case !feedback.OK():
			fmt.Fprintln(out, ui.MenuErrorStyle.Render(feedback.Problem))
		case feedback.Redraw:
			render(out, title, menu)
		}
	}

	if option, ok := menu.Choice(); ok {
		return option, nil
	}
	fmt.Fprintln(out)
	return Option{}, ErrAborted
}

// readLines feeds lines from in to the returned channel, which is closed at
// end of input.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

func render(out io.Writer, title string, menu *Menu) {
	heading := title
	if q := menu.Query(); q != "" {
		heading = fmt.Sprintf("%s (matching %q)", title, q)
	}
	fmt.Fprintln(out, ui.MenuTitleStyle.Render(heading))

	options := menu.Visible()
	width := len(strconv.Itoa(len(options))) + 1
	index := ui.MenuIndexStyle.Width(width)
	for i, option := range options {
		line := index.Render(strconv.Itoa(i)) + ": " + option.Label
		for _, flag := range option.Flags {
			line += " " + ui.MenuFlagStyle.Render("("+string(flag)+")")
		}
		fmt.Fprintln(out, line)
	}
}

func hints(menu *Menu) string {
	lines := []string{"", "Enter a number to select from list."}
	if menu.Expandable() {
		lines = append(lines, "Enter 'F' to expand the options list.")
	}
	if _, ok := menu.Default(); ok {
		lines = append(lines, "Hit <Enter> to accept default choice.")
	}
	lines = append(lines, "Enter '/text' to narrow the list, '/' to reset.")

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(ui.MenuHintStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("Please choose an object: ")
	return b.String()
}
