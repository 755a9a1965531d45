package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")

	if err := os.WriteFile(local, []byte("MORTGAGE_TEST_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("writing %s: %v", local, err)
	}
	if err := os.WriteFile(shared, []byte("MORTGAGE_TEST_LEVEL=error\nMORTGAGE_TEST_STORE=redis\nMORTGAGE_TEST_ADDRESS=:9000\n"), 0o600); err != nil {
		t.Fatalf("writing %s: %v", shared, err)
	}

	t.Setenv("MORTGAGE_TEST_ADDRESS", ":7000")
	t.Setenv("MORTGAGE_TEST_LEVEL", "")
	t.Setenv("MORTGAGE_TEST_STORE", "")
	os.Unsetenv("MORTGAGE_TEST_LEVEL")
	os.Unsetenv("MORTGAGE_TEST_STORE")

	if err := loadDotEnv(local, shared, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for key, want := range map[string]string{
		"MORTGAGE_TEST_LEVEL":   "debug",
		"MORTGAGE_TEST_STORE":   "redis",
		"MORTGAGE_TEST_ADDRESS": ":7000",
	} {
		if got := os.Getenv(key); got != want {
			t.Fatalf("expected %s=%q, got %q", key, want, got)
		}
	}
}

func TestLoadDotEnvReportsMalformedFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(bad, []byte("MORTGAGE_TEST_BAD=\"unterminated\n"), 0o600); err != nil {
		t.Fatalf("writing %s: %v", bad, err)
	}

	if err := loadDotEnv(bad); err == nil {
		t.Fatal("expected an error for a malformed file")
	}
}
