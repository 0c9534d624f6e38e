// Package selector implements the numbered choice menu used when a command
// needs the user to pick a policy or package.
//
// A Menu is a small state machine driven by Transition; it does no I/O.
// Prompt runs a Menu against a terminal.
package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrAborted is returned when the user cancels a selection.
var ErrAborted = errors.New("selection cancelled")

// State is the menu's position in the selection flow.
type State int

const (
	// Filtered shows the short list; "F" switches to Full.
	Filtered State = iota
	// Full shows every option.
	Full
	// Selected is terminal and carries the chosen option.
	Selected
	// Aborted is terminal and carries nothing.
	Aborted
)

func (s State) String() string {
	switch s {
	case Filtered:
		return "filtered"
	case Full:
		return "full"
	case Selected:
		return "selected"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Flag marks an option with extra text in the listing.
type Flag string

const (
	// FlagCurrent marks the option already in use.
	FlagCurrent Flag = "CURRENT"
	// FlagDefault marks the option chosen by an empty answer.
	FlagDefault Flag = "DEFAULT"
)

// Option is one menu entry.
type Option struct {
	ID    int
	Label string
	Flags []Flag
}

// Has reports whether the option carries flag.
func (o Option) Has(flag Flag) bool {
	for _, f := range o.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// EventKind distinguishes user input from cancellation.
type EventKind int

const (
	// EventInput is a line typed by the user.
	EventInput EventKind = iota
	// EventInterrupt is a cancellation (SIGINT or end of input).
	EventInterrupt
)

// Event drives a menu transition.
type Event struct {
	Kind EventKind
	Text string
}

// Input returns an input event for a typed line.
func Input(text string) Event {
	return Event{Kind: EventInput, Text: text}
}

// Interrupt returns a cancellation event.
func Interrupt() Event {
	return Event{Kind: EventInterrupt}
}

// Feedback reports the outcome of a transition. Problem is empty when the
// input was accepted.
type Feedback struct {
	Problem string
	// Redraw is set when the visible list changed.
	Redraw bool
}

// OK reports whether the input was accepted.
func (f Feedback) OK() bool {
	return f.Problem == ""
}

// Menu tracks which list is shown and what was chosen.
type Menu struct {
	state    State
	filtered []Option
	full     []Option
	query    string
	visible  []Option
	choice   Option
}

// NewMenu starts on the filtered list, or on the full list when filtered
// is empty.
func NewMenu(filtered, full []Option) *Menu {
	m := &Menu{state: Filtered, filtered: filtered, full: full}
	if len(filtered) == 0 {
		m.state = Full
	}
	m.visible = m.base()
	return m
}

// State returns the current state.
func (m *Menu) State() State {
	return m.state
}

// Done reports whether the menu reached a terminal state.
func (m *Menu) Done() bool {
	return m.state == Selected || m.state == Aborted
}

// Expandable reports whether "F" would show more options.
func (m *Menu) Expandable() bool {
	return m.state == Filtered
}

// Query returns the active narrowing pattern, if any.
func (m *Menu) Query() string {
	return m.query
}

// Visible returns the options currently listed, after narrowing.
func (m *Menu) Visible() []Option {
	return m.visible
}

// Default returns the visible DEFAULT option. When several are flagged the
// last one wins.
func (m *Menu) Default() (Option, bool) {
	for i := len(m.visible) - 1; i >= 0; i-- {
		if m.visible[i].Has(FlagDefault) {
			return m.visible[i], true
		}
	}
	return Option{}, false
}

// Choice returns the selected option once the menu is in Selected.
func (m *Menu) Choice() (Option, bool) {
	return m.choice, m.state == Selected
}

func (m *Menu) base() []Option {
	if m.state == Filtered {
		return m.filtered
	}
	return m.full
}

// Transition applies one event:
//   - "F" switches the filtered list to the full list
//   - an index, "#<id>" or an exact label selects a visible option
//   - an empty line selects the DEFAULT option
//   - "/<pattern>" narrows the list by fuzzy match and "/" clears it
//   - an interrupt aborts
func (m *Menu) Transition(ev Event) Feedback {
	if m.Done() {
		return Feedback{Problem: fmt.Sprintf("menu is already %s", m.state)}
	}
	if ev.Kind == EventInterrupt {
		m.state = Aborted
		return Feedback{}
	}

	text := strings.TrimSpace(ev.Text)
	switch {
	case strings.EqualFold(text, "F"):
		if m.state != Filtered {
			return Feedback{Problem: "Already showing all options."}
		}
		m.state = Full
		m.query = ""
		m.visible = m.full
		return Feedback{Redraw: true}

	case text == "":
		option, ok := m.Default()
		if !ok {
			return Feedback{Problem: "There is no default choice."}
		}
		return m.selectOption(option)

	case strings.HasPrefix(text, "/"):
		return m.narrow(strings.TrimSpace(text[1:]))

	case strings.HasPrefix(text, "#"):
		id, err := strconv.Atoi(text[1:])
		if err != nil {
			return Feedback{Problem: fmt.Sprintf("Invalid id %q.", text[1:])}
		}
		for _, option := range m.visible {
			if option.ID == id {
				return m.selectOption(option)
			}
		}
		return Feedback{Problem: fmt.Sprintf("No option with id %d.", id)}
	}

	if index, err := strconv.Atoi(text); err == nil {
		if index < 0 || index >= len(m.visible) {
			return Feedback{Problem: fmt.Sprintf("Choose a number from 0 to %d.", len(m.visible)-1)}
		}
		return m.selectOption(m.visible[index])
	}

	for _, option := range m.visible {
		if option.Label == text {
			return m.selectOption(option)
		}
	}
	return Feedback{Problem: "Invalid choice!"}
}

func (m *Menu) selectOption(option Option) Feedback {
	m.state = Selected
	m.choice = option
	return Feedback{}
}

func (m *Menu) narrow(pattern string) Feedback {
	if pattern == "" {
		m.query = ""
		m.visible = m.base()
		return Feedback{Redraw: true}
	}

	matches := fuzzyFilter(m.base(), pattern)
	if len(matches) == 0 {
		return Feedback{Problem: fmt.Sprintf("Nothing matches %q.", pattern)}
	}
	m.query = pattern
	m.visible = matches
	return Feedback{Redraw: true}
}
