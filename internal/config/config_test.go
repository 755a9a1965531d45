package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Fatalf("expected address %q, got %q", ":8080", cfg.Server.Address)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected shutdown timeout 5s, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Session.Store != StoreMemory {
		t.Fatalf("expected %q store, got %q", StoreMemory, cfg.Session.Store)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %s", cfg.Session.TTL)
	}
	if !cfg.Telemetry.Tracing || cfg.Telemetry.Logs {
		t.Fatalf("unexpected telemetry defaults: %+v", cfg.Telemetry)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
  shutdown_timeout: 10s
logging:
  level: debug
  format: console
telemetry:
  tracing: false
session:
  store: redis
  redis_addr: "cache:6379"
  ttl: 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Fatalf("expected address %q, got %q", ":9090", cfg.Server.Address)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected shutdown timeout 10s, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Telemetry.Tracing {
		t.Fatal("expected tracing to be disabled")
	}
	if cfg.Session.Store != StoreRedis || cfg.Session.RedisAddr != "cache:6379" || cfg.Session.TTL != 5*time.Minute {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Session.CookieName != "mortgage_session" {
		t.Fatalf("expected default cookie name, got %q", cfg.Session.CookieName)
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  address: \":9090\"\n")
	t.Setenv("MORTGAGE_SERVER_ADDRESS", ":7070")
	t.Setenv("MORTGAGE_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Address != ":7070" {
		t.Fatalf("expected env address %q, got %q", ":7070", cfg.Server.Address)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level %q, got %q", "warn", cfg.Logging.Level)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: loud
  format: xml
session:
  store: disk
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	for _, want := range []string{"invalid log level: loud", "invalid log format: xml", "invalid session store: disk"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	example, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("loading example config: %v", err)
	}
	defaults, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if *example != *defaults {
		t.Fatalf("expected example config to equal defaults\nexample:  %+v\ndefaults: %+v", *example, *defaults)
	}
}
