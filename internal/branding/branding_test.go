package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "resrules" {
		t.Errorf("CLIName = %q, want %q", got, "resrules")
	}
	if got := HomeDir(); got != ".resrules" {
		t.Errorf("HomeDir = %q, want %q", got, ".resrules")
	}
	if got := EnvVar("rule_dir"); got != "RESRULES_RULE_DIR" {
		t.Errorf("EnvVar = %q, want %q", got, "RESRULES_RULE_DIR")
	}
}

func TestParseOverlaysBuiltin(t *testing.T) {
	tests := []struct {
		name string
		data string
		want brand
	}{
		{"empty", "", builtin},
		{"garbage", "cli_name: [", builtin},
		{"blank values keep builtin", "cli_name: '  '\nhome_dir: ''\n", builtin},
		{
			"partial",
			"cli_name: rr\nenv_prefix: rr_\n",
			brand{
				CLIName:     "rr",
				DisplayName: builtin.DisplayName,
				Description: builtin.Description,
				HomeDir:     builtin.HomeDir,
				EnvPrefix:   "RR",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parse([]byte(tt.data)); got != tt.want {
				t.Errorf("parse(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}
