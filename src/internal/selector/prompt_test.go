package selector

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

func TestMain(m *testing.M) {
	ui.DisableColor()
	m.Run()
}

func TestPrompt_SelectsAfterInvalidInput(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("banana\nF\n3\n")

	option, err := Prompt(context.Background(), in, &out, "Packages", NewMenu(newerGoats, allPackages))
	require.NoError(t, err)
	assert.Equal(t, 20, option.ID)

	text := out.String()
	assert.Contains(t, text, "Packages")
	assert.Contains(t, text, "Invalid choice!")
	assert.Contains(t, text, "Enter 'F' to expand the options list.")
	assert.Contains(t, text, "Hit <Enter> to accept default choice.")
	assert.Contains(t, text, "Goat Simulator-1.2.0.pkg (CURRENT)")
	assert.Contains(t, text, "Goat Simulator-1.4.0.pkg (DEFAULT)")
}

func TestPrompt_EndOfInputAborts(t *testing.T) {
	var out bytes.Buffer

	_, err := Prompt(context.Background(), strings.NewReader("banana\n"), &out, "Packages", NewMenu(newerGoats, allPackages))
	assert.True(t, errors.Is(err, ErrAborted), "got %v", err)
}

func TestPrompt_CancelAborts(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Prompt(ctx, in, io.Discard, "Policies", NewMenu(nil, allPackages))
	assert.True(t, errors.Is(err, ErrAborted), "got %v", err)
}

func TestTerminal_SharesInputAcrossMenus(t *testing.T) {
	terminal := NewTerminal(strings.NewReader("1\n\n"), io.Discard)

	first, err := terminal.Choose(context.Background(), "Policies", NewMenu(nil, allPackages))
	require.NoError(t, err)
	assert.Equal(t, allPackages[1].ID, first.ID)

	second, err := terminal.Choose(context.Background(), "Packages", NewMenu(newerGoats, allPackages))
	require.NoError(t, err)
	assert.Equal(t, "Goat Simulator-1.4.0.pkg", second.Label)
}
