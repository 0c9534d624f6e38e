package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
)

func TestScopedCommand(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "scoped", "Testing")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "Policies scoped to Testing\nID: 7\tNAME: Install Goat Simulator-1.2.0\n")
	assert.Contains(t, result.stdout, "Policies scoped to all computers\nID: 8\tNAME: Install Nethack-3.4.3\n")
}

func TestScopeDiffCommand_SameScope(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "scope_diff", "Production", "Production")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "have the same scope")
}

func TestScopeDiffCommand(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "scope_diff", "Testing", "Production")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "--- \"Testing\"\n+++ \"Production\"\n")
	assert.Contains(t, result.stdout, "-ID: 7\tNAME: Install Goat Simulator-1.2.0\n")
}

func TestInstallsCommand(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "installs", "Nethack*")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "ID: 8\tNAME: Install Nethack-3.4.3")
	assert.NotContains(t, result.stdout, "Goat")
}

func TestBatchScopeCommand_DryRun(t *testing.T) {
	repo := newFakeRepo()
	useServer(t, repo)

	result := execute(t, "", "batch_scope", "Production", "Install*", "--dry-run")
	require.NoError(t, result.err)

	assert.Empty(t, repo.Saved)
	assert.Contains(t, result.stdout, "Scoping to groups: Production")
	assert.Contains(t, result.stdout, "Install Goat Simulator-1.2.0: would be scoped (dry run).")
}

func TestBatchScopeCommand_Saves(t *testing.T) {
	repo := newFakeRepo()
	useServer(t, repo)

	result := execute(t, "", "batch_scope", "4", "7")
	require.NoError(t, result.err)

	require.Len(t, repo.Saved, 1)
	refs := repo.Stored(jss.Policy, 7).References("scope/computer_groups/computer_group")
	require.Len(t, refs, 2)
	assert.Equal(t, "Production", refs[1].Name())
	assert.Contains(t, result.stdout, "Install Goat Simulator-1.2.0: Success.")
}

func TestBatchScopeCommand_UnknownGroup(t *testing.T) {
	repo := newFakeRepo()
	useServer(t, repo)

	result := execute(t, "", "batch_scope", "Staging", "7")

	require.Error(t, result.err)
	assert.Empty(t, repo.Saved)
}

func TestOutdatedCommand(t *testing.T) {
	useServer(t, newFakeRepo())

	result := execute(t, "", "outdated")
	require.NoError(t, result.err)

	assert.Equal(t, "Policies with newer packages available\n"+
		"ID: 7\tNAME: Install Goat Simulator-1.2.0\n", result.stdout)
}
