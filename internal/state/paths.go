package state

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the directory name under the XDG config home.
	ConfigDirName = "cfbrowse"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// CredentialFileName is the name of the file holding the API key.
	CredentialFileName = "credential"
)

// GetConfigDir returns the cfbrowse configuration directory, honouring
// XDG_CONFIG_HOME and defaulting to ~/.config/cfbrowse.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// GetCredentialPath returns the path to the stored API key.
func GetCredentialPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, CredentialFileName), nil
}

// EnsureDir ensures that a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to ensure directory %s: %w", path, err)
	}
	return nil
}
