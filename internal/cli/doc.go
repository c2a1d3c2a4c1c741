// Package cli defines the Cobra command tree for the resrules CLI. Each file
// in this package registers one top-level command (list, show, check, etc.)
// with the root command. Command implementations delegate to internal packages
// for discovery and rule building and only handle flags and output formatting.
package cli
