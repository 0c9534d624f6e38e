package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
)

func TestSearchCommand_ListsAll(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "policy")
	require.NoError(t, result.err)

	assert.Equal(t, "ID: 7\tNAME: Install Goat Simulator-1.2.0\n"+
		"ID: 8\tNAME: Install Nethack-3.4.3\n", result.stdout)
}

func TestSearchCommand_WildcardListsMatches(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "package", "Goat*")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "NAME: Goat Simulator-1.0.0.pkg")
	assert.Contains(t, result.stdout, "NAME: Goat Simulator-1.3.1.pkg")
	assert.NotContains(t, result.stdout, "Nethack")
}

func TestSearchCommand_SingleResultPrintsDocument(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "policy", "7")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "<policy>")
	assert.Contains(t, result.stdout, "<name>Install Goat Simulator-1.2.0</name>")
}

func TestSearchCommand_NotFound(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "group", "Staging")

	require.Error(t, result.err)
	assert.True(t, errors.Is(result.err, jss.ErrNotFound), "got %v", result.err)
	assert.Equal(t, exitFailure, exitCode(result.err))
	assert.Contains(t, result.stderr, "Object: Staging does not exist!")
}

func TestSearchCommand_EmptyServer(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "md")
	require.NoError(t, result.err)

	assert.Equal(t, "No results found.\n", result.stdout)
}

func TestSearchCommand_ConnectionFailure(t *testing.T) {
	previous := connectServer
	connectServer = func() (server, error) { return nil, errors.New("no server configured") }
	t.Cleanup(func() { connectServer = previous })

	result := execute(t, "", "policy")

	require.Error(t, result.err)
	assert.Equal(t, exitFailure, exitCode(result.err))
}
