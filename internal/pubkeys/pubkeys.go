// Package pubkeys reads directories of public key files, one key per file.
package pubkeys

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads every regular file in dir and returns one string per file, in
// filename order. Subdirectories are skipped. A missing directory or an
// unreadable file is returned as an error; callers append the result onto
// their accumulator rather than replacing it.
func Load(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list pubkeys: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read pubkey %s: %w", e.Name(), err)
		}
		keys = append(keys, string(b))
	}
	return keys, nil
}
