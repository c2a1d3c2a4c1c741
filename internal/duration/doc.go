// Package duration converts human-readable duration strings such as "2h30m"
// into whole seconds, as used by resource agent action timeouts and intervals.
package duration
