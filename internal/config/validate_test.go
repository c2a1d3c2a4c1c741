package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		valid   bool
		keyword string
	}{
		{"empty", "", true, ""},
		{"full", "rule_dir: /usr/share/cluster\nraw_metadata: false\nmetadata_ext: metadata\nextract_timeout: 30s\nmax_metadata_bytes: 1024\nlog_level: warn\n", true, ""},
		{"zero timeout", "extract_timeout: \"0\"\n", true, ""},
		{"non-boolean raw", "raw_metadata: maybe\n", false, "type"},
		{"bad timeout", "extract_timeout: forever\n", false, "pattern"},
		{"bad level", "log_level: loud\n", false, "enum"},
		{"zero limit", "max_metadata_bytes: 0\n", false, "minimum"},
		{"unknown key", "colour: blue\n", false, "additionalProperties"},
		{"dotted ext", "metadata_ext: .xml\n", false, "pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, "%+v", result.Issues)
			if tt.valid {
				return
			}
			require.NotEmpty(t, result.Issues)
			assert.Equal(t, tt.keyword, result.Issues[0].Keyword)
		})
	}
}

func TestValidateMalformedYAML(t *testing.T) {
	_, err := Validate([]byte("rule_dir: [unterminated\n"))
	assert.Error(t, err)
}

func TestValidationResultErr(t *testing.T) {
	assert.NoError(t, (&ValidationResult{Valid: true}).Err("x"))

	err := (&ValidationResult{Issues: []ValidationIssue{
		{Path: "/log_level", Message: "bad"},
		{Message: "extra"},
	}}).Err("/etc/x.yaml")
	assert.EqualError(t, err, "/etc/x.yaml: /log_level: bad; extra")
}
