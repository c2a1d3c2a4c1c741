//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hugovk/clufter/internal/discovery"
)

// TestSpawnedAgents runs real agents and checks the resulting catalog.
func TestSpawnedAgents(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "fs.sh", agentXML("fs", "1.0", "name", "mountpoint"))
	writeAgent(t, dir, "ip.sh", agentXML("ip", "2.1.0", "address"))
	writeAgent(t, dir, "zip.sh", agentXML("ip", "9.9", "other"))
	writeAgent(t, dir, "script.sh~", agentXML("backup", "1.0", "name"))
	writeAgent(t, dir, ".hidden.sh", agentXML("hidden", "1.0", "name"))
	writeAgent(t, dir, "old.sh.rpmsave", agentXML("old", "1.0", "name"))
	writeFile(t, filepath.Join(dir, "README"), "not an agent\n", 0o644)
	writeFile(t, filepath.Join(dir, "silent.sh"), "#!/bin/sh\nexit 0\n", 0o755)

	catalog, res := discover(t, discovery.Options{Dir: dir})

	if got, want := ruleTypes(catalog), []string{"fs", "ip"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rule types = %v, want %v", got, want)
	}
	if res.Fallback {
		t.Error("spawn mode must not fall back")
	}
	if res.Failed != 1 {
		t.Errorf("Failed = %d, want 1 (silent.sh)", res.Failed)
	}
	if res.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1 (zip.sh duplicate)", res.Rejected)
	}

	ip, ok := catalog.Get("ip")
	if !ok {
		t.Fatal("ip rule missing")
	}
	if ip.Agent != filepath.Join(dir, "ip.sh") {
		t.Errorf("ip agent = %s, want the first agent in name order", ip.Agent)
	}
	if primary, ok := ip.Attributes.Primary(); !ok || primary.Name != "address" {
		t.Errorf("ip primary = %+v, %v", primary, ok)
	}
	status, ok := ip.Actions.Get("status@0")
	if !ok {
		t.Fatal("status@0 missing")
	}
	if status.Interval != 3600 {
		t.Errorf("status interval = %d, want 3600", status.Interval)
	}
}

// TestRawMetadataFallback follows a link chain to the fallback directory
// when the configured rule directory is missing.
func TestRawMetadataFallback(t *testing.T) {
	root := t.TempDir()
	binDir := filepath.Join(root, "bin")
	writeFile(t, filepath.Join(binDir, "resrules"), "", 0o755)
	writeFile(t, filepath.Join(binDir, "lvm.sh.metadata"), agentXML("lvm", "1.0", "name"), 0o644)
	writeFile(t, filepath.Join(binDir, "vm.metadata"), agentXML("vm", "1.0", "name"), 0o644)

	link1 := filepath.Join(root, "link1")
	link2 := filepath.Join(root, "link2")
	if err := os.Symlink(filepath.Join(binDir, "resrules"), link1); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(link1, link2); err != nil {
		t.Fatal(err)
	}

	catalog, res := discover(t, discovery.Options{
		Dir:         filepath.Join(root, "missing"),
		RawMetadata: true,
		SelfPath:    link2,
	})

	if !res.Fallback || res.Dir != binDir {
		t.Fatalf("result = %+v, want fallback to %s", res, binDir)
	}
	if got, want := ruleTypes(catalog), []string{"vm", "lvm"}; !reflect.DeepEqual(got, want) {
		t.Errorf("rule types = %v, want %v", got, want)
	}
}
