package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Path utilities

// GetConfigDir returns the directory holding the jetpack configuration
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "jetpack"), nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Permission utilities

// ParseFileMode parses an octal permission string such as "0644", "644" or
// "0o600". An empty string yields 0.
func ParseFileMode(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	mode, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	if os.FileMode(mode)&^os.ModePerm != 0 {
		return 0, fmt.Errorf("invalid file mode %q: only permission bits are allowed", s)
	}
	return os.FileMode(mode), nil
}

// FormatFileMode renders mode the way ParseFileMode accepts it.
func FormatFileMode(mode os.FileMode) string {
	return fmt.Sprintf("%04o", uint32(mode.Perm()))
}
