// Package discovery finds resource agents in a rule directory, extracts their
// metadata one at a time, and loads the resulting rules into a catalog.
// Failures of individual candidates are logged and skipped; only the lack of
// any usable rule directory fails a discovery pass.
package discovery
