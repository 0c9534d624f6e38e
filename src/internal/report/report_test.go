package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
)

func TestResults(t *testing.T) {
	output := Results("Policies", []jss.Summary{
		{ID: 7, Name: "Install Goat Simulator-1.2.0"},
		{ID: 120, Name: "Install Nethack-3.4.3"},
	})

	assert.Equal(t, "Policies\n"+
		"ID:   7\tNAME: Install Goat Simulator-1.2.0\n"+
		"ID: 120\tNAME: Install Nethack-3.4.3\n", output)
}

func TestResults_Empty(t *testing.T) {
	assert.Equal(t, "Heading\n"+NoResults+"\n", Results("Heading\n", nil))
	assert.Equal(t, NoResults+"\n", Results("", nil))
}

func TestDiff(t *testing.T) {
	diff, err := Diff("before", "a\nb\nc\n", "after", "a\nB\nc\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(diff, "--- before\n+++ after\n"), diff)
	assert.Contains(t, diff, "-b\n")
	assert.Contains(t, diff, "+B\n")
}

func TestDiff_Equal(t *testing.T) {
	diff, err := Diff("a", "same\n", "b", "same\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}
