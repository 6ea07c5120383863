// Package provkit provides the command-line interface for the provkit
// tool. It loads the built-in and user-selected configuration directories,
// then exposes subcommands (bundles, pubkeys, plan, show) for inspecting
// the resulting provisioning configuration.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/provkit/provkit/cmd/provkit"
//	func main() { provkit.Execute() }
package provkit
