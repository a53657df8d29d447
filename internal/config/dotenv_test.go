package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("NOT A VALID LINE\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := LoadDotEnv(path); err == nil {
		t.Fatal("expected error for malformed .env")
	}
}
