package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("ADMIN_PASSPHRASE", "letmein")
	t.Setenv("ADMIN_JWT_SECRET", testSecret)
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

store:
  driver: "postgres"

admin:
  passphrase: "letmein"
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  session_ttl: "12h"

catalog:
  persist_cascades: true
  refresh_interval: "5m"
  submit_rate_per_minute: 3

backup:
  dir: "/var/backups/vault"
  s3:
    bucket: "vault-backups"
    region: "eu-central-1"
    endpoint: "http://localhost:9000"

log:
  level: "debug"
  format: "text"
  file: "/var/log/vault.log"
  max_size_mb: 10

metrics:
  enabled: true
  path: "/internal/metrics"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Errorf("server addr = %q", cfg.Server.Addr())
	}

	// Database
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if !cfg.Database.MigrateOnStart {
		t.Error("database.migrate_on_start should default to true")
	}

	// Admin
	if cfg.Admin.SessionTTL != 12*time.Hour {
		t.Errorf("admin.session_ttl = %v, want 12h", cfg.Admin.SessionTTL)
	}
	if cfg.Admin.JWTIssuer != "prompt-vault" {
		t.Errorf("admin.jwt_issuer = %q, want default", cfg.Admin.JWTIssuer)
	}

	// Catalog
	if !cfg.Catalog.PersistCascades {
		t.Error("catalog.persist_cascades should be true")
	}
	if cfg.Catalog.RefreshInterval != 5*time.Minute {
		t.Errorf("catalog.refresh_interval = %v, want 5m", cfg.Catalog.RefreshInterval)
	}
	if cfg.Catalog.SubmitRatePerMinute != 3 {
		t.Errorf("catalog.submit_rate_per_minute = %d, want 3", cfg.Catalog.SubmitRatePerMinute)
	}

	// Backup
	if !cfg.Backup.S3.Enabled() || cfg.Backup.S3.Region != "eu-central-1" {
		t.Errorf("backup.s3 = %+v", cfg.Backup.S3)
	}
	if cfg.Backup.S3.Prefix != "backups/" {
		t.Errorf("backup.s3.prefix = %q, want default", cfg.Backup.S3.Prefix)
	}

	// Log
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 5 {
		t.Errorf("log rotation = %d/%d", cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}

	// Metrics
	if cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("metrics.path = %q", cfg.Metrics.Path)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Store.Driver != DriverMemory {
		t.Errorf("store.driver = %q, want %q (ENV override)", cfg.Store.Driver, DriverMemory)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("store.driver = %q, want default %q", cfg.Store.Driver, DriverPostgres)
	}
	if cfg.Catalog.PersistCascades {
		t.Error("catalog.persist_cascades should default to false")
	}
	if cfg.Admin.SessionTTL != 0 {
		t.Errorf("admin.session_ttl = %v, want 0 (no expiry)", cfg.Admin.SessionTTL)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func validConfig() Config {
	return Config{
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/testdb"},
		Store:    StoreConfig{Driver: DriverPostgres},
		Admin: AdminConfig{
			Passphrase: "letmein",
			JWTSecret:  testSecret,
		},
		Catalog: CatalogConfig{SubmitRatePerMinute: 10},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"jwt secret too short", func(c *Config) { c.Admin.JWTSecret = "short" }},
		{"jwt secret empty", func(c *Config) { c.Admin.JWTSecret = "" }},
		{"no passphrase", func(c *Config) { c.Admin.Passphrase = "" }},
		{"negative session ttl", func(c *Config) { c.Admin.SessionTTL = -time.Second }},
		{"postgres without dsn", func(c *Config) { c.Database.DSN = "" }},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }},
		{"negative refresh", func(c *Config) { c.Catalog.RefreshInterval = -time.Minute }},
		{"negative submit rate", func(c *Config) { c.Catalog.SubmitRatePerMinute = -1 }},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"s3 half credentials", func(c *Config) {
			c.Backup.S3.Bucket = "b"
			c.Backup.S3.AccessKeyID = "id"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_MemoryDriverNeedsNoDSN(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Store.Driver = DriverMemory
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_HashOnly(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Admin.Passphrase = ""
	cfg.Admin.PassphraseHash = "$2a$10$abcdefghijklmnopqrstuv"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" GET, POST ,,OPTIONS ")
	want := []string{"GET", "POST", "OPTIONS"}
	if len(got) != len(want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
