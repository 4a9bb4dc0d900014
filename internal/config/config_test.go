package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recruitdesk.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvSeedPath, "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.DefaultPageSize != 10 || cfg.MaxUploadBytes != 20<<20 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.CallProviders) != 2 {
		t.Fatalf("expected two providers, got %v", cfg.CallProviders)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
addr: ":9000"
log_level: debug
page_sizes: [5, 20]
default_page_size: 20
timezone: UTC
seed_path: seed.yaml
`)
	t.Setenv(EnvAddr, ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Fatalf("expected env addr to win, got %q", cfg.Addr)
	}
	if cfg.SeedPath != "seed.yaml" || cfg.DefaultPageSize != 20 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", level)
	}
	if loc, _ := cfg.Location(); loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v", loc)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"default not allowed": "page_sizes: [10, 25]\ndefault_page_size: 50\n",
		"bad timezone":        "timezone: Mars/Olympus\n",
		"bad level":           "log_level: loud\n",
		"no providers":        "call_providers: []\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestPageSize(t *testing.T) {
	cfg := Default()
	if cfg.PageSize(25) != 25 {
		t.Fatalf("expected allowed size to pass through")
	}
	if cfg.PageSize(7) != 10 || cfg.PageSize(0) != 10 {
		t.Fatalf("expected fallback to default")
	}
}
