package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("expected default max request size, got %d", cfg.RequestSizeBytes())
	}
	if cfg.MetricsPath != constants.DefaultMetricsPath {
		t.Fatalf("expected default metrics path, got %q", cfg.MetricsPath)
	}
	if cfg.Cache.TTLDuration() != time.Hour {
		t.Fatalf("expected one hour cache ttl, got %v", cfg.Cache.TTLDuration())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxRequestSize: 16K
metricsPath: internal/metrics
shareBaseUrl: https://calculators.example.com/compound-interest
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
cache:
  redisAddr: localhost:6379
  redisDb: 2
  keyPrefix: "calc:"
  ttl: 15m
  maxEntries: 500
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.RequestSizeBytes() != 16*1024 {
		t.Fatalf("expected max request override, got %d", cfg.RequestSizeBytes())
	}
	if cfg.MetricsPath != "/internal/metrics" {
		t.Fatalf("expected metrics path to gain a leading slash, got %s", cfg.MetricsPath)
	}
	if cfg.ShareBaseURL != "https://calculators.example.com/compound-interest" {
		t.Fatalf("unexpected share base URL %s", cfg.ShareBaseURL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 || cfg.Cache.KeyPrefix != "calc:" {
		t.Fatalf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.Cache.TTLDuration() != 15*time.Minute {
		t.Fatalf("expected 15m ttl, got %v", cfg.Cache.TTLDuration())
	}
	if cfg.Cache.MaxEntries != 500 {
		t.Fatalf("expected 500 max entries, got %d", cfg.Cache.MaxEntries)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := map[string]string{
		"bad size": "maxRequestSize: invalid",
		"bad ttl":  "cache:\n  ttl: soon",
		"bad yaml": "address: [",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error but got nil")
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxRequestSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1G"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}

func TestLoadConfigExample(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "server-config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.RequestSizeBytes() != 64*1024 {
		t.Fatalf("expected 64K request limit, got %d", cfg.RequestSizeBytes())
	}
	if cfg.Cache.RedisAddr != "" || cfg.Cache.MaxEntries != 10000 {
		t.Fatalf("unexpected cache config %+v", cfg.Cache)
	}
}
