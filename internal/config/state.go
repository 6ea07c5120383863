package config

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/provkit/provkit/internal/bundle"
)

// Version is the provkit release version, checked against descriptor
// min_version gates.
const Version = "0.1.0"

// Provider identifies a cloud driver understood by the provisioning layer.
type Provider string

const ProviderRackspace Provider = "rackspace"

// Built-in defaults applied by New. Site configuration directories override
// them during the configuration phase.
const (
	DefaultImageName  = "noble"
	DefaultLocationID = 0
	DefaultSizeID     = 0
	DefaultTargetDir  = "/root/deploy"
	DefaultNamePrefix = "deploy-test-"

	// DefaultMetadataContainer names the object-store container for node
	// metadata. Empty disables metadata entirely.
	DefaultMetadataContainer = "node_meta"
)

// KeyNotFoundError reports a read of a configuration key no configuration
// path has set. It usually means a required secrets directory was not
// passed via -c.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("config key %q not set", e.Key)
}

// State is the configuration context threaded through the loader and into
// every configuration directory's descriptor or init hook. It replaces
// process-global state: construct one with New and pass it by pointer. It
// is mutated only during the single-threaded configuration phase and read
// afterwards by provisioning code.
type State struct {
	Providers  map[string]Provider
	ImageNames map[string]string
	ImageName  string
	LocationID int
	SizeID     int

	TargetDir           string
	NamePrefix          string
	DestroyablePrefixes []string
	MetadataContainer   string

	// Pubkeys accumulates public keys across every configuration path
	// processed, in processing order.
	Pubkeys []string

	Bundles       *bundle.Registry
	CommonBundles []string

	// Path is the configuration directory currently being applied. It is
	// the base against which that directory's relative bundle sources
	// resolve, and must be set before any relative registration.
	Path string

	values map[string]any
	logger *slog.Logger
}

// New returns a State carrying the built-in defaults. A nil logger means
// slog.Default().
func New(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		Providers: map[string]Provider{
			"rackspace": ProviderRackspace,
		},
		ImageNames: map[string]string{
			"jammy": "Ubuntu 22.04 LTS (jammy)",
			"noble": "Ubuntu 24.04 LTS (noble)",
		},
		ImageName:           DefaultImageName,
		LocationID:          DefaultLocationID,
		SizeID:              DefaultSizeID,
		TargetDir:           DefaultTargetDir,
		NamePrefix:          DefaultNamePrefix,
		DestroyablePrefixes: []string{DefaultNamePrefix},
		MetadataContainer:   DefaultMetadataContainer,
		Bundles:             bundle.NewRegistry(logger),
		values:              make(map[string]any),
		logger:              logger,
	}
}

// Set stores value under key. Overwriting a key that already holds a
// non-zero value logs a warning and proceeds; last write wins.
func (s *State) Set(key string, value any) {
	if prev, ok := s.values[key]; ok && !isZero(prev) {
		s.logger.Warn("overwriting config key", "key", key)
	}
	s.values[key] = value
}

// Get returns the value stored under key, or a *KeyNotFoundError.
func (s *State) Get(key string) (any, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, &KeyNotFoundError{Key: key}
	}
	return v, nil
}

// GetString is Get for string-valued keys. Non-string values are formatted
// with %v, so numeric descriptor values still make usable flag defaults.
func (s *State) GetString(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	if str, ok := v.(string); ok {
		return str, nil
	}
	return fmt.Sprintf("%v", v), nil
}

// Lookup returns the value stored under key and whether it was present.
func (s *State) Lookup(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// AppendPubkeys adds keys to the accumulated pubkey list. Results from
// multiple configuration paths accumulate rather than replace.
func (s *State) AppendPubkeys(keys []string) {
	s.Pubkeys = append(s.Pubkeys, keys...)
}

const nameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// NodeName returns a fresh node name: the configured prefix plus a random
// six-character suffix.
func (s *State) NodeName() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = nameCharset[rand.IntN(len(nameCharset))]
	}
	return s.NamePrefix + string(b)
}

// Destroyable reports whether name carries a prefix that marks the node as
// safe to destroy.
func (s *State) Destroyable(name string) bool {
	for _, prefix := range s.DestroyablePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// DefaultPubkey reads the user's default SSH public key, preferring
// ed25519 over RSA.
func DefaultPubkey() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	var firstErr error
	for _, name := range []string{"id_ed25519.pub", "id_rsa.pub"} {
		b, err := os.ReadFile(filepath.Join(home, ".ssh", name))
		if err == nil {
			return string(b), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", fmt.Errorf("no default public key: %w", firstErr)
}

// Snapshot is a read-only summary of a State, shaped for display.
type Snapshot struct {
	ImageName         string            `yaml:"image_name"`
	ImageNames        map[string]string `yaml:"image_names"`
	Providers         []string          `yaml:"providers"`
	LocationID        int               `yaml:"location_id"`
	SizeID            int               `yaml:"size_id"`
	TargetDir         string            `yaml:"target_dir"`
	NamePrefix        string            `yaml:"name_prefix"`
	MetadataContainer string            `yaml:"metadata_container,omitempty"`
	CommonBundles     []string          `yaml:"common_bundles,omitempty"`
	Bundles           []string          `yaml:"bundles"`
	PubkeyCount       int               `yaml:"pubkey_count"`
	Values            map[string]string `yaml:"values,omitempty"`
}

// Snapshot summarizes the state. Values under credential-looking keys are
// redacted so the summary is safe to print or log.
func (s *State) Snapshot() Snapshot {
	providers := make([]string, 0, len(s.Providers))
	for name := range s.Providers {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	var values map[string]string
	if len(s.values) > 0 {
		values = make(map[string]string, len(s.values))
		for k, v := range s.values {
			values[k] = displayValue(k, v)
		}
	}
	return Snapshot{
		ImageName:         s.ImageName,
		ImageNames:        s.ImageNames,
		Providers:         providers,
		LocationID:        s.LocationID,
		SizeID:            s.SizeID,
		TargetDir:         s.TargetDir,
		NamePrefix:        s.NamePrefix,
		MetadataContainer: s.MetadataContainer,
		CommonBundles:     s.CommonBundles,
		Bundles:           s.Bundles.Names(),
		PubkeyCount:       len(s.Pubkeys),
		Values:            values,
	}
}

func displayValue(key string, v any) string {
	lower := strings.ToLower(key)
	for _, marker := range []string{"secret", "token", "password"} {
		if strings.Contains(lower, marker) {
			return "[REDACTED]"
		}
	}
	return fmt.Sprintf("%v", v)
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
