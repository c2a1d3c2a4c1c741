//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hugovk/clufter/internal/discovery"
	"github.com/hugovk/clufter/internal/metadata"
	"github.com/hugovk/clufter/internal/rules"
)

// writeAgent creates an executable shell agent that prints body on meta-data.
func writeAgent(t *testing.T, dir, name, body string) string {
	t.Helper()
	script := "#!/bin/sh\n" +
		"[ \"$1\" = meta-data ] || exit 2\n" +
		"cat <<'METADATA'\n" + body + "METADATA\n"
	return writeFile(t, filepath.Join(dir, name), script, 0o755)
}

// writeFile creates a file with the given content and mode.
func writeFile(t *testing.T, path, content string, mode os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// agentXML renders a minimal resource-agent document.
func agentXML(name, version string, params ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>` + "\n")
	b.WriteString(`<resource-agent name="` + name + `" version="` + version + `">` + "\n")
	b.WriteString("  <parameters>\n")
	for i, p := range params {
		primary := ""
		if i == 0 {
			primary = ` primary="1"`
		}
		b.WriteString(`    <parameter name="` + p + `"` + primary + `><content type="string"/></parameter>` + "\n")
	}
	b.WriteString("  </parameters>\n")
	b.WriteString(`  <actions><action name="start" timeout="20"/><action name="status" depth="0" interval="1h"/></actions>` + "\n")
	b.WriteString("</resource-agent>\n")
	return b.String()
}

// discover runs one discovery pass over opts.Dir.
func discover(t *testing.T, opts discovery.Options) (*rules.Catalog, *discovery.Result) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	extractor := metadata.NewExtractor(5*time.Second, metadata.DefaultMaxOutput, nil)
	catalog := rules.NewCatalog()
	res, err := discovery.New(opts, extractor, nil).Discover(ctx, catalog)
	if err != nil {
		t.Fatalf("Discover(%s): %v", opts.Dir, err)
	}
	t.Cleanup(catalog.Destroy)
	return catalog, res
}

func ruleTypes(c *rules.Catalog) []string {
	var out []string
	for _, r := range c.Rules() {
		out = append(out, r.Type)
	}
	return out
}
