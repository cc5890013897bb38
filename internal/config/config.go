package config

import (
	"os"
	"path/filepath"
)

const (
	AppName         = "calpick"
	OptionsFileName = "options.yaml"
)

// DataDir returns the path to the calpick data directory (~/.calpick/)
// Creates the directory if it doesn't exist
// Can be overridden with CALPICK_DATA_DIR environment variable (primarily for testing)
func DataDir() (string, error) {
	if dataDir := os.Getenv("CALPICK_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// LogDir returns the path to the log directory (~/.calpick/logs/)
// Creates the directory if it doesn't exist
func LogDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}

	return logDir, nil
}

// DefaultOptionsPath returns the options file read when --config is not
// given (~/.calpick/options.yaml). The file itself may not exist.
func DefaultOptionsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, OptionsFileName), nil
}
