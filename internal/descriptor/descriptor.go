package descriptor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"

	"github.com/provkit/provkit/internal/config"
)

// Candidate descriptor filenames, in search order.
var candidates = []string{"provkit.yml", "provkit.yaml", "provkit.toml"}

// ErrNotFound reports that a directory carries no descriptor file. That is
// not a failure: hook-only and pubkey-only directories are fine.
var ErrNotFound = errors.New("no descriptor")

// BundleSpec declares one bundle in a descriptor file. Scripts are
// filenames under the scripts directory; files are absolute target paths
// whose basenames live under the files directory. Both directories are
// relative to the configuration directory unless overridden.
type BundleSpec struct {
	Name       string   `yaml:"name" toml:"name"`
	Scripts    []string `yaml:"scripts" toml:"scripts"`
	Files      []string `yaml:"files" toml:"files"`
	ScriptsDir *string  `yaml:"scripts_dir" toml:"scripts_dir"`
	FilesDir   *string  `yaml:"files_dir" toml:"files_dir"`
	TargetDir  *string  `yaml:"target_dir" toml:"target_dir"`
}

// Descriptor is the on-disk shape of a configuration directory's
// declarative contribution.
type Descriptor struct {
	MinVersion    *string        `yaml:"min_version" toml:"min_version"`
	Defaults      map[string]any `yaml:"defaults" toml:"defaults"`
	Bundles       []BundleSpec   `yaml:"bundles" toml:"bundles"`
	CommonBundles []string       `yaml:"common_bundles" toml:"common_bundles"`
}

// Find returns the path of the first descriptor file present in dir, or
// ErrNotFound.
func Find(dir string) (string, error) {
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// Load reads and decodes the descriptor at path. The format is chosen by
// extension: .toml is TOML, everything else is YAML.
func Load(path string) (Descriptor, error) {
	var d Descriptor
	b, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if filepath.Ext(path) == ".toml" {
		if err := toml.Unmarshal(b, &d); err != nil {
			return d, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return d, nil
	}
	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// Apply runs dir's configuration against st. The directory becomes st.Path
// before anything registers, so relative bundle sources resolve against it.
// Then the descriptor file, if present, is applied, and the init hook
// registered under the directory's basename, if any, is called. A directory
// with neither is a no-op. Errors here are non-fatal to the caller's loop
// over configuration paths.
func Apply(dir string, st *config.State) error {
	st.Path = dir
	path, err := Find(dir)
	if err == nil {
		d, err := Load(path)
		if err != nil {
			return err
		}
		if err := d.checkVersion(); err != nil {
			return err
		}
		if err := d.apply(dir, st); err != nil {
			return err
		}
	}
	if fn, ok := lookupHook(filepath.Base(dir)); ok {
		if err := fn(st); err != nil {
			return fmt.Errorf("init %s: %w", filepath.Base(dir), err)
		}
	}
	return nil
}

func (d Descriptor) checkVersion() error {
	if d.MinVersion == nil {
		return nil
	}
	required, err := semver.ParseTolerant(*d.MinVersion)
	if err != nil {
		return fmt.Errorf("bad min_version %q: %w", *d.MinVersion, err)
	}
	cur, err := semver.ParseTolerant(config.Version)
	if err != nil {
		return err
	}
	if cur.LT(required) {
		return fmt.Errorf("descriptor requires provkit >= %s, this is %s", required, config.Version)
	}
	return nil
}

func (d Descriptor) apply(dir string, st *config.State) error {
	for key, value := range d.Defaults {
		st.Set(key, value)
	}
	for _, b := range d.Bundles {
		if b.Name == "" {
			return errors.New("bundle declaration missing name")
		}
		scriptsDir := config.ScriptsDir
		if b.ScriptsDir != nil {
			scriptsDir = *b.ScriptsDir
		}
		filesDir := config.FilesDir
		if b.FilesDir != nil {
			filesDir = *b.FilesDir
		}
		targetDir := st.TargetDir
		if b.TargetDir != nil {
			targetDir = *b.TargetDir
		}
		st.Bundles.RegisterSimple(b.Name, b.Scripts, b.Files, scriptsDir, filesDir, dir, targetDir)
	}
	st.CommonBundles = append(st.CommonBundles, d.CommonBundles...)
	return nil
}
