// Package loader drives the first configuration step: walking configuration
// directories in order, accumulating public keys, and applying each
// directory's descriptor or init hook against a single config.State. It
// also provides the two-pass flag-parsing helpers host applications use to
// accept configuration paths on their own command lines.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/provkit/provkit/internal/config"
	"github.com/provkit/provkit/internal/descriptor"
	"github.com/provkit/provkit/internal/pubkeys"
)

// Options configures a Loader.
type Options struct {
	// BaseDir anchors relative configuration paths passed to Configure.
	// Empty means the running executable's directory, falling back to the
	// working directory.
	BaseDir string
	Logger  *slog.Logger
}

// Loader applies configuration paths to one State, sequentially: a later
// path's init may depend on values an earlier one set.
type Loader struct {
	state  *config.State
	base   string
	logger *slog.Logger
}

// New returns a Loader that populates st.
func New(st *config.State, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base := opts.BaseDir
	if base == "" {
		base = defaultBaseDir()
	}
	return &Loader{state: st, base: base, logger: logger}
}

func defaultBaseDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Configure processes each configuration path in order. For each path,
// resolved against BaseDir: keys under a pubkeys/ subdirectory, when one
// exists, accumulate onto the state, then the directory's descriptor or
// init hook is applied. Descriptor and hook failures are logged as warnings
// and the remaining paths still run. An empty paths slice is a no-op.
func (l *Loader) Configure(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	for _, p := range paths {
		dir := config.NormalizePath(p, l.base)
		l.logger.Debug("configuration path", "dir", dir)
		pubdir := filepath.Join(dir, config.PubkeysDir)
		if _, err := os.Stat(pubdir); err == nil {
			keys, err := pubkeys.Load(pubdir)
			if err != nil {
				return fmt.Errorf("configure %s: %w", dir, err)
			}
			l.state.AppendPubkeys(keys)
		}
		if err := descriptor.Apply(dir, l.state); err != nil {
			l.logger.Warn("unable to apply configuration", "dir", dir, "error", err)
		}
	}
	return nil
}

// ConfigureCWD is Configure with relative paths anchored at the process's
// working directory instead of BaseDir. It backs user-supplied -c flags,
// which name directories relative to wherever the tool was run.
func (l *Loader) ConfigureCWD(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		abs = append(abs, config.NormalizePath(p, cwd))
	}
	return l.Configure(abs)
}

// DefaultPaths returns the built-in configuration paths: the defaults and
// secrets directories under BaseDir, plus the user's local secrets
// directory when it exists.
func (l *Loader) DefaultPaths() []string {
	paths := []string{"defaults", "secrets"}
	if home, err := os.UserHomeDir(); err == nil {
		local := filepath.Join(home, ".provkit", "secrets")
		if _, err := os.Stat(local); err == nil {
			paths = append(paths, local)
		}
	}
	return paths
}
