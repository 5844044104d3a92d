package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error writing config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaultPreset(t *testing.T) {
	path := writeConfig(t, "maxKeyLength: 64\nmaxNestingDepth: 10\n")
	limits, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limits.MaxKeyLength != 64 {
		t.Errorf("expected MaxKeyLength=64 got %d", limits.MaxKeyLength)
	}
	if limits.MaxNestingDepth != 10 {
		t.Errorf("expected MaxNestingDepth=10 got %d", limits.MaxNestingDepth)
	}
}

func TestLoadSecurePreset(t *testing.T) {
	path := writeConfig(t, "preset: secure\nmaxNestingDepth: 5\n")
	limits, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limits.MaxNestingDepth != 5 {
		t.Errorf("expected override MaxNestingDepth=5 got %d", limits.MaxNestingDepth)
	}
	if limits.MaxMantissaDigits != 19 {
		t.Errorf("expected the secure preset's MaxMantissaDigits=19 to survive, got %d", limits.MaxMantissaDigits)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
