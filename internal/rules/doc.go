// Package rules holds the resource-rule catalog: the validated schema of every
// resource type discovered from agent metadata, together with the collectors
// and builder that populate it from a parsed metadata document.
package rules
