package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.hcr/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".hcr", "logs")
	}
	return filepath.Join(home, ".hcr", "logs")
}

// DefaultLogPath returns the default harness log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "hcrbench.log")
}
