// Package descriptor applies a configuration directory's contribution to
// the configuration state. A directory may carry a declarative descriptor
// file (provkit.yml, provkit.yaml or provkit.toml) declaring defaults and
// bundles, a programmatic init hook registered under the directory's
// basename, both, or neither. This replaces the original design of
// importing configuration directories as dynamically loaded modules.
package descriptor
