package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, unknown, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown = %v, want none", unknown)
	}
	if cfg.Cache.Backend != backendFile || cfg.Store.Backend != backendFile {
		t.Errorf("backends = %q/%q, want file/file", cfg.Cache.Backend, cfg.Store.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if !cfg.Server.metricsEnabled() {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
solver = "weak"
bogus = 1

[cache]
backend = "Redis"
redis_addr = "localhost:6379"
redis_db = 2

[store]
backend = "none"

[server]
addr = ":9090"
solve_timeout = "45s"
metrics = false
`)

	cfg, unknown, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Solver != "weak" {
		t.Errorf("solver = %q, want weak", cfg.Solver)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != backendNone {
		t.Errorf("store backend = %q, want none", cfg.Store.Backend)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.metricsEnabled() {
		t.Errorf("server = %+v", cfg.Server)
	}
	if d, _ := cfg.Server.timeout(); d != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", d)
	}
	if !slices.Contains(unknown, "bogus") {
		t.Errorf("unknown = %v, want bogus", unknown)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "solver = ", "parse config"},
		{"cache backend", "[cache]\nbackend = \"memcached\"", "unknown cache backend"},
		{"redis without addr", "[cache]\nbackend = \"redis\"", "redis_addr"},
		{"store backend", "[store]\nbackend = \"sqlite\"", "unknown store backend"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"", "mongo_uri"},
		{"timeout", "[server]\nsolve_timeout = \"soon\"", "solve_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}
