package cmd

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/config"
)

// useConfigRoot points settings at a temp directory for the test.
func useConfigRoot(t *testing.T) {
	t.Helper()
	t.Setenv(config.RootEnvVar, t.TempDir())
	config.ResetPathsCache()
	t.Cleanup(config.ResetPathsCache)
}

func TestConfigureCommand_Flags(t *testing.T) {
	useConfigRoot(t)

	result := execute(t, "", "configure",
		"--url", "https://jss.example.com:8443/", "--username", "api", "--no-verify-ssl")
	require.NoError(t, result.err)

	settings, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "https://jss.example.com:8443", settings.URL)
	assert.Equal(t, "api", settings.Username)
	assert.Empty(t, settings.Password)
	assert.False(t, settings.ShouldVerifySSL())
}

func TestConfigureCommand_Prompts(t *testing.T) {
	useConfigRoot(t)

	result := execute(t, "https://jss.example.com\nadmin\n", "configure")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "Server URL: ")
	assert.Contains(t, result.stdout, "Username: ")

	settings, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "https://jss.example.com", settings.URL)
	assert.Equal(t, "admin", settings.Username)
	assert.True(t, settings.ShouldVerifySSL())
}

func TestConfigureCommand_KeepsSavedValues(t *testing.T) {
	useConfigRoot(t)
	require.NoError(t, config.SaveSettings(&config.Settings{
		URL:      "https://old.example.com",
		Username: "api",
		Password: "secret",
	}))

	result := execute(t, "\n\n", "configure")
	require.NoError(t, result.err)

	assert.Contains(t, result.stdout, "Server URL [https://old.example.com]: ")

	settings, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "https://old.example.com", settings.URL)
	assert.Equal(t, "api", settings.Username)
	assert.Equal(t, "secret", settings.Password)
}

func TestConfigureCommand_RequiresURL(t *testing.T) {
	useConfigRoot(t)

	result := execute(t, "", "configure", "--username", "api")

	require.Error(t, result.err)
	assert.NoFileExists(t, config.SettingsPath())
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{"answer", "new\n", "old", "new"},
		{"answer without newline", "new", "old", "new"},
		{"empty line", "\n", "old", "old"},
		{"end of input", "", "old", "old"},
		{"whitespace", "   \n", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ask(newLineReader(tt.input), "Username", tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newLineReader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}
