// Package config holds the configuration state a provisioning run reads:
// built-in defaults, accumulated public keys, the bundle registry, and any
// values set by site configuration directories. It is internal; the loader
// package drives how configuration directories populate a State.
package config
