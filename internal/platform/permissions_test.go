package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestIsExecutable(t *testing.T) {
	tests := []struct {
		mode os.FileMode
		want bool
	}{
		{0644, false},
		{0600, false},
		{0744, true},
		{0654, true},
		{0645, true},
		{0755, true},
	}
	for _, tt := range tests {
		if got := IsExecutable(tt.mode); got != tt.want {
			t.Errorf("IsExecutable(%o) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestIsExecutableFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no Unix permission bits on Windows")
	}
	tmp := t.TempDir()
	path := filepath.Join(tmp, "agent.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if IsExecutable(info.Mode()) {
		t.Error("0644 file reported executable")
	}

	if err := os.Chmod(path, 0750); err != nil {
		t.Fatal(err)
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !IsExecutable(info.Mode()) {
		t.Error("0750 file reported not executable")
	}
}
