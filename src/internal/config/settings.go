// Package config loads the server connection settings.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// SettingsFileName is the name of the settings configuration file
const SettingsFileName = "settings.json"

// Environment variables that override the settings file
const (
	URLEnvVar      = "JSS_URL"
	UsernameEnvVar = "JSS_USERNAME"
	PasswordEnvVar = "JSS_PASSWORD"
)

// Settings holds the server connection settings
type Settings struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	// VerifySSL is a pointer so a missing key defaults to true
	VerifySSL *bool `json:"verifySSL,omitempty"`
}

// ShouldVerifySSL reports whether TLS certificates are verified.
func (s *Settings) ShouldVerifySSL() bool {
	return s.VerifySSL == nil || *s.VerifySSL
}

// SetVerifySSL stores the TLS verification preference.
func (s *Settings) SetVerifySSL(verify bool) {
	s.VerifySSL = &verify
}

// SettingsPath returns the path to the settings file
func SettingsPath() string {
	paths := DefaultPaths()
	return filepath.Join(paths.Config, SettingsFileName)
}

// LoadSettings loads settings from the settings file.
// Returns empty settings if the file doesn't exist.
func LoadSettings() (*Settings, error) {
	settingsPath := SettingsPath()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	settings.URL = strings.TrimRight(strings.TrimSpace(settings.URL), "/")
	return &settings, nil
}

// Load returns the settings file merged with environment overrides.
func Load() (*Settings, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	settings.applyEnvironment()
	return settings, nil
}

func (s *Settings) applyEnvironment() {
	if v := os.Getenv(URLEnvVar); v != "" {
		s.URL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(UsernameEnvVar); v != "" {
		s.Username = v
	}
	if v := os.Getenv(PasswordEnvVar); v != "" {
		s.Password = v
	}
}

// Validate checks that a server URL and username are present.
func (s *Settings) Validate() error {
	if s.URL == "" {
		return errors.New("no server URL configured (run 'jsshelper configure' or set " + URLEnvVar + ")")
	}
	if s.Username == "" {
		return errors.New("no username configured (run 'jsshelper configure' or set " + UsernameEnvVar + ")")
	}
	return nil
}

// SaveSettings saves settings to the settings file.
// The file may hold a password, so it is only readable by the owner.
func SaveSettings(settings *Settings) error {
	settingsPath := SettingsPath()

	// Ensure the config directory exists
	configDir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(settingsPath, data, 0600)
}
