// Package bundle defines deployment bundles and the registry that holds
// them. A bundle maps target paths on the new node to local source paths
// for the files to copy and scripts to run during deployment.
package bundle

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Bundle holds the target-to-source path mappings for one named bundle.
// Treat a registered bundle as immutable; replace it via Register instead
// of mutating the maps.
type Bundle struct {
	// ScriptMap maps the script's path on the node to its local source.
	ScriptMap map[string]string
	// FileMap maps the file's path on the node to its local source.
	FileMap map[string]string
}

// MakeMap maps each filename's path under targetDir to its path under
// sourceDir. Most useful for scripts, whose location when run is
// unimportant, so they can all share one target directory.
func MakeMap(filenames []string, sourceDir, targetDir string) map[string]string {
	m := make(map[string]string, len(filenames))
	for _, f := range filenames {
		m[filepath.Join(targetDir, f)] = filepath.Join(sourceDir, f)
	}
	return m
}

// Registry holds the named bundles available for installation on a node.
type Registry struct {
	bundles map[string]Bundle
	logger  *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger means slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{bundles: make(map[string]Bundle), logger: logger}
}

// Register stores a bundle under name. Registering an existing name logs a
// warning and replaces the stored bundle; last write wins. Nil maps are
// stored as empty maps.
func (r *Registry) Register(name string, scriptMap, fileMap map[string]string) {
	if _, ok := r.bundles[name]; ok {
		r.logger.Warn("overwriting bundle", "name", name)
	}
	if scriptMap == nil {
		scriptMap = map[string]string{}
	}
	if fileMap == nil {
		fileMap = map[string]string{}
	}
	r.bundles[name] = Bundle{ScriptMap: scriptMap, FileMap: fileMap}
}

// RegisterSimple builds and registers a bundle from a list of script
// filenames found in a common scripts directory under basePath, and a list
// of absolute target file paths whose basenames are found in a common files
// directory under basePath. Scripts land under targetDir on the node.
// Duplicate filenames collapse, since target paths are map keys.
func (r *Registry) RegisterSimple(name string, scripts, files []string, scriptsDir, filesDir, basePath, targetDir string) {
	scriptMap := MakeMap(scripts, filepath.Join(basePath, scriptsDir), targetDir)
	fileMap := make(map[string]string, len(files))
	for _, target := range files {
		fileMap[target] = filepath.Join(basePath, filesDir, filepath.Base(target))
	}
	r.Register(name, scriptMap, fileMap)
}

// Get returns the bundle registered under name.
func (r *Registry) Get(name string) (Bundle, bool) {
	b, ok := r.bundles[name]
	return b, ok
}

// Names returns all registered bundle names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bundles))
	for name := range r.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered bundles.
func (r *Registry) Len() int {
	return len(r.bundles)
}

// Match returns the sorted bundle names matching pattern, which may use
// doublestar globs. The whole name must match.
func (r *Registry) Match(pattern string) ([]string, error) {
	var names []string
	for name := range r.bundles {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// splitLinesRE marks scripts whose lines the deployer runs one at a time.
var splitLinesRE = regexp.MustCompile(`(?i)split-lines:\W*true`)

// SplitLines reports whether a script's contents request line-at-a-time
// execution via a "split-lines: true" marker anywhere in the text.
func SplitLines(contents string) bool {
	return splitLinesRE.MatchString(contents)
}
