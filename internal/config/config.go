package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything a cartly session needs.
type Config struct {
	Storefront    StorefrontConfig
	Storage       StorageConfig
	Log           LogConfig
	Analytics     AnalyticsConfig
	MetricsAddr   string
	ProbeInterval time.Duration
}

// StorefrontConfig locates the shop and bounds request volume.
type StorefrontConfig struct {
	Domain            string
	AccessToken       string
	APIVersion        string
	PageSize          int
	RequestsPerSecond float64
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string
	Path    string
}

// LogConfig controls the log file.
type LogConfig struct {
	Level       string
	File        string
	Environment string
}

// AnalyticsConfig enables NATS publishing when NATSURL is set.
type AnalyticsConfig struct {
	NATSURL string
	Subject string
}

const (
	defaultConfigPath    = "~/.config/cartly/config.toml"
	defaultEnvFile       = ".env"
	defaultDomain        = "storecartly1.myshopify.com"
	defaultAPIVersion    = "2025-04"
	defaultPageSize      = 20
	defaultRPS           = 2.0
	defaultBackend       = "toml"
	defaultTOMLPath      = "~/.local/share/cartly/storage.toml"
	defaultSQLitePath    = "~/.local/share/cartly/storage.db"
	defaultLogFile       = "~/.local/share/cartly/cartly.log"
	defaultLogLevel      = "info"
	defaultEnvironment   = "production"
	defaultNATSSubject   = "cartly.analytics"
	defaultProbeInterval = 15 * time.Second
)

// Environment variables that override file values.
const (
	EnvDomain        = "CARTLY_SHOPIFY_DOMAIN"
	EnvAccessToken   = "CARTLY_STOREFRONT_TOKEN"
	EnvAPIVersion    = "CARTLY_API_VERSION"
	EnvBackend       = "CARTLY_STORAGE_BACKEND"
	EnvStoragePath   = "CARTLY_STORAGE_PATH"
	EnvLogLevel      = "CARTLY_LOG_LEVEL"
	EnvLogFile       = "CARTLY_LOG_FILE"
	EnvEnvironment   = "CARTLY_ENVIRONMENT"
	EnvNATSURL       = "CARTLY_NATS_URL"
	EnvNATSSubject   = "CARTLY_NATS_SUBJECT"
	EnvMetricsAddr   = "CARTLY_METRICS_ADDR"
	EnvProbeInterval = "CARTLY_PROBE_INTERVAL"
)

type rawConfig struct {
	Storefront struct {
		Domain            string  `toml:"domain"`
		AccessToken       string  `toml:"access_token"`
		APIVersion        string  `toml:"api_version"`
		PageSize          int     `toml:"page_size"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
	} `toml:"storefront"`
	Storage struct {
		Backend string `toml:"backend"`
		Path    string `toml:"path"`
	} `toml:"storage"`
	Log struct {
		Level       string `toml:"level"`
		File        string `toml:"file"`
		Environment string `toml:"environment"`
	} `toml:"log"`
	Analytics struct {
		NATSURL string `toml:"nats_url"`
		Subject string `toml:"subject"`
	} `toml:"analytics"`
	Metrics struct {
		Addr string `toml:"addr"`
	} `toml:"metrics"`
	Connectivity struct {
		ProbeInterval string `toml:"probe_interval"`
	} `toml:"connectivity"`
}

// Load reads the TOML config at path (the default location when empty), then
// applies CARTLY_* environment overrides. Variables from envFile (".env" when
// empty) are loaded first without replacing ones already set. Missing files
// fall back to defaults.
func Load(path, envFile string) (Config, error) {
	raw, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	applyEnv(&raw)
	return finalize(raw)
}

func readFile(path string) (rawConfig, error) {
	var raw rawConfig
	resolved, err := resolvePath(path)
	if err != nil {
		return raw, err
	}
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return raw, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return raw, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

func loadEnvFile(envFile string) error {
	if strings.TrimSpace(envFile) == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return nil
}

func applyEnv(raw *rawConfig) {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	override(&raw.Storefront.Domain, EnvDomain)
	override(&raw.Storefront.AccessToken, EnvAccessToken)
	override(&raw.Storefront.APIVersion, EnvAPIVersion)
	override(&raw.Storage.Backend, EnvBackend)
	override(&raw.Storage.Path, EnvStoragePath)
	override(&raw.Log.Level, EnvLogLevel)
	override(&raw.Log.File, EnvLogFile)
	override(&raw.Log.Environment, EnvEnvironment)
	override(&raw.Analytics.NATSURL, EnvNATSURL)
	override(&raw.Analytics.Subject, EnvNATSSubject)
	override(&raw.Metrics.Addr, EnvMetricsAddr)
	override(&raw.Connectivity.ProbeInterval, EnvProbeInterval)
}

func finalize(raw rawConfig) (Config, error) {
	cfg := Config{
		Storefront: StorefrontConfig{
			Domain:            orDefault(raw.Storefront.Domain, defaultDomain),
			AccessToken:       strings.TrimSpace(raw.Storefront.AccessToken),
			APIVersion:        orDefault(raw.Storefront.APIVersion, defaultAPIVersion),
			PageSize:          raw.Storefront.PageSize,
			RequestsPerSecond: raw.Storefront.RequestsPerSecond,
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(orDefault(raw.Storage.Backend, defaultBackend)),
		},
		Log: LogConfig{
			Level:       strings.ToLower(orDefault(raw.Log.Level, defaultLogLevel)),
			File:        mustExpand(orDefault(raw.Log.File, defaultLogFile)),
			Environment: strings.ToLower(orDefault(raw.Log.Environment, defaultEnvironment)),
		},
		Analytics: AnalyticsConfig{
			NATSURL: strings.TrimSpace(raw.Analytics.NATSURL),
			Subject: orDefault(raw.Analytics.Subject, defaultNATSSubject),
		},
		MetricsAddr:   strings.TrimSpace(raw.Metrics.Addr),
		ProbeInterval: defaultProbeInterval,
	}
	if cfg.Storefront.PageSize <= 0 {
		cfg.Storefront.PageSize = defaultPageSize
	}
	if cfg.Storefront.RequestsPerSecond <= 0 {
		cfg.Storefront.RequestsPerSecond = defaultRPS
	}

	switch cfg.Storage.Backend {
	case "toml":
		cfg.Storage.Path = mustExpand(orDefault(raw.Storage.Path, defaultTOMLPath))
	case "sqlite":
		cfg.Storage.Path = mustExpand(orDefault(raw.Storage.Path, defaultSQLitePath))
	case "memory":
	default:
		return Config{}, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}

	if s := strings.TrimSpace(raw.Connectivity.ProbeInterval); s != "" {
		d, err := parseInterval(s)
		if err != nil {
			return Config{}, fmt.Errorf("parse probe_interval: %w", err)
		}
		cfg.ProbeInterval = d
	}
	return cfg, nil
}

// parseInterval accepts Go durations ("30s") or a bare number of seconds.
func parseInterval(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("interval must be positive")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return d, nil
}

// Development reports whether the environment is "development".
func (c Config) Development() bool {
	return c.Log.Environment == "development"
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func orDefault(v, def string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return def
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
