package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points HOME and the working directory at fresh temp dirs and unsets
// every override variable. t.Setenv restores the originals on cleanup.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	for _, key := range []string{
		EnvDomain, EnvAccessToken, EnvAPIVersion, EnvBackend, EnvStoragePath,
		EnvLogLevel, EnvLogFile, EnvEnvironment, EnvNATSURL, EnvNATSSubject,
		EnvMetricsAddr, EnvProbeInterval,
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return home
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storefront.Domain != defaultDomain || cfg.Storefront.APIVersion != defaultAPIVersion {
		t.Fatalf("Storefront = %+v, want defaults", cfg.Storefront)
	}
	if cfg.Storefront.PageSize != defaultPageSize || cfg.Storefront.RequestsPerSecond != defaultRPS {
		t.Fatalf("Storefront limits = %+v, want defaults", cfg.Storefront)
	}
	if cfg.Storage.Backend != "toml" {
		t.Fatalf("Backend = %q, want toml", cfg.Storage.Backend)
	}
	wantPath, err := expandPath(defaultTOMLPath)
	if err != nil {
		t.Fatalf("expandPath(defaultTOMLPath) returned error: %v", err)
	}
	if cfg.Storage.Path != wantPath {
		t.Fatalf("Storage.Path = %q, want %q", cfg.Storage.Path, wantPath)
	}
	if !strings.HasPrefix(cfg.Log.File, home) {
		t.Fatalf("Log.File = %q, want it under HOME %q", cfg.Log.File, home)
	}
	if cfg.Log.Level != "info" || cfg.Development() {
		t.Fatalf("Log = %+v, want info/production", cfg.Log)
	}
	if cfg.ProbeInterval != defaultProbeInterval {
		t.Fatalf("ProbeInterval = %v, want %v", cfg.ProbeInterval, defaultProbeInterval)
	}
	if cfg.Analytics.NATSURL != "" || cfg.MetricsAddr != "" {
		t.Fatalf("optional outputs enabled by default: %+v %q", cfg.Analytics, cfg.MetricsAddr)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[storefront]
domain = "  shop.example.com  "
access_token = " secret "
page_size = 5
requests_per_second = 4.5

[storage]
backend = " SQLite "
path = "  ~/data/cart.db  "

[log]
level = "DEBUG"
environment = "development"

[analytics]
nats_url = "nats://127.0.0.1:4222"

[metrics]
addr = "127.0.0.1:9464"

[connectivity]
probe_interval = "30s"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storefront.Domain != "shop.example.com" || cfg.Storefront.AccessToken != "secret" {
		t.Fatalf("Storefront = %+v", cfg.Storefront)
	}
	if cfg.Storefront.PageSize != 5 || cfg.Storefront.RequestsPerSecond != 4.5 {
		t.Fatalf("Storefront limits = %+v", cfg.Storefront)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Path != filepath.Join(home, "data", "cart.db") {
		t.Fatalf("Storage = %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" || !cfg.Development() {
		t.Fatalf("Log = %+v", cfg.Log)
	}
	if cfg.Analytics.Subject != defaultNATSSubject {
		t.Fatalf("Analytics.Subject = %q, want default", cfg.Analytics.Subject)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" || cfg.ProbeInterval != 30*time.Second {
		t.Fatalf("MetricsAddr=%q ProbeInterval=%v", cfg.MetricsAddr, cfg.ProbeInterval)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storefront]\ndomain = \"file.example.com\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	envFile := filepath.Join(t.TempDir(), "cartly.env")
	if err := os.WriteFile(envFile, []byte("CARTLY_STOREFRONT_TOKEN=from-dotenv\nCARTLY_PROBE_INTERVAL=45\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvDomain, "env.example.com")
	t.Setenv(EnvBackend, "memory")

	cfg, err := Load(path, envFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storefront.Domain != "env.example.com" {
		t.Fatalf("Domain = %q, want env override", cfg.Storefront.Domain)
	}
	if cfg.Storefront.AccessToken != "from-dotenv" {
		t.Fatalf("AccessToken = %q, want value from .env", cfg.Storefront.AccessToken)
	}
	if cfg.Storage.Backend != "memory" || cfg.Storage.Path != "" {
		t.Fatalf("Storage = %+v, want memory without path", cfg.Storage)
	}
	if cfg.ProbeInterval != 45*time.Second {
		t.Fatalf("ProbeInterval = %v, want 45s", cfg.ProbeInterval)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid toml", `[storefront`, "parse config"},
		{"unknown backend", "[storage]\nbackend = \"redis\"\n", "unsupported storage backend"},
		{"bad interval", "[connectivity]\nprobe_interval = \"soon\"\n", "parse probe_interval"},
		{"negative interval", "[connectivity]\nprobe_interval = \"-5s\"\n", "parse probe_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path, "")
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
