// Package config manages resrules settings stored at ~/.resrules/config.yaml
// and RESRULES_* environment variables: where to look for resource agents,
// whether to read pre-rendered metadata, and how long an agent may take.
package config
