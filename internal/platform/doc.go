// Package platform provides the filesystem primitives discovery relies on:
// resolving a bounded chain of symbolic links and checking execute
// permission bits.
package platform
