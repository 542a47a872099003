// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome resolves a leading "~" or "~/" to the user's home directory.
// Other paths, and all paths when the home directory is unknown, are
// returned cleaned but otherwise unchanged.
//
//   - "~/groups.json" -> "/home/me/groups.json"
//   - "~" -> "/home/me"
//   - "~other/x" -> "~other/x" (other users are not looked up)
//   - "" -> ""
func ExpandHome(path string) string {
	if path == "" {
		return ""
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path)
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ConfigDir returns ~/.config/pulsar, or the empty string if the home
// directory is unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pulsar")
}
