// Package branding provides compile-time identity values for the CLI.
//
// The values come from the embedded branding.yaml. A key that is missing or
// blank there keeps its built-in value, so a partial file still yields a
// usable identity.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

var builtin = brand{
	CLIName:     "resrules",
	DisplayName: "resrules",
	Description: "Resource agent rule catalog inspector",
	HomeDir:     ".resrules",
	EnvPrefix:   "RESRULES",
}

var current = sync.OnceValue(func() brand { return parse(rawBranding) })

// parse overlays the non-blank values of data on the built-in brand.
// Unparsable data yields the built-in brand.
func parse(data []byte) brand {
	var file brand
	if err := yaml.Unmarshal(data, &file); err != nil {
		return builtin
	}
	b := builtin
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&b.CLIName, file.CLIName},
		{&b.DisplayName, file.DisplayName},
		{&b.Description, file.Description},
		{&b.HomeDir, file.HomeDir},
		{&b.EnvPrefix, file.EnvPrefix},
	} {
		if v := strings.TrimSpace(f.src); v != "" {
			*f.dst = v
		}
	}
	b.EnvPrefix = strings.ToUpper(strings.TrimSuffix(b.EnvPrefix, "_"))
	return b
}

// CLIName returns the root command name (e.g., "resrules").
func CLIName() string { return current().CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { return current().DisplayName }

// Description returns the short product description.
func Description() string { return current().Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".resrules").
func HomeDir() string { return current().HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "RESRULES").
func EnvPrefix() string { return current().EnvPrefix }

// EnvVar returns the environment variable viper reads for a setting key,
// e.g., EnvVar("rule_dir") → "RESRULES_RULE_DIR".
func EnvVar(key string) string {
	return EnvPrefix() + "_" + strings.ToUpper(key)
}
