// Package metadata obtains the XML self-description of a resource agent,
// either by running the agent with the "meta-data" argument or by reading a
// pre-rendered file, and exposes the parsed document through typed,
// index-addressed paths.
package metadata
