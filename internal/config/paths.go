package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Well-known subdirectory names inside a configuration directory.
const (
	ScriptsDir = "scripts"
	FilesDir   = "files"
	PubkeysDir = "pubkeys"
)

// NormalizePath resolves path against base. A leading "~" expands to the
// user's home directory and takes precedence over base-joining; absolute
// paths are returned unchanged; anything else is joined onto base. No
// filesystem check is performed.
func NormalizePath(path, base string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				return home
			}
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
