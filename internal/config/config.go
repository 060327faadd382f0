package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Admin    AdminConfig    `yaml:"admin"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Backup   BackupConfig   `yaml:"backup"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StoreConfig selects the catalog store implementation.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"postgres"`
}

// AdminConfig holds the shared admin passphrase and session settings.
type AdminConfig struct {
	Passphrase     string        `yaml:"passphrase"      env:"ADMIN_PASSPHRASE"`
	PassphraseHash string        `yaml:"passphrase_hash" env:"ADMIN_PASSPHRASE_HASH"`
	JWTSecret      string        `yaml:"jwt_secret"      env:"ADMIN_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"      env:"ADMIN_JWT_ISSUER"      env-default:"prompt-vault"`
	SessionTTL     time.Duration `yaml:"session_ttl"     env:"ADMIN_SESSION_TTL"     env-default:"0s"`
}

// CatalogConfig holds catalog behaviour settings.
type CatalogConfig struct {
	PersistCascades     bool          `yaml:"persist_cascades"       env:"CATALOG_PERSIST_CASCADES"       env-default:"false"`
	RefreshInterval     time.Duration `yaml:"refresh_interval"       env:"CATALOG_REFRESH_INTERVAL"       env-default:"0s"`
	SubmitRatePerMinute int           `yaml:"submit_rate_per_minute" env:"CATALOG_SUBMIT_RATE_PER_MINUTE" env-default:"10"`
}

// BackupConfig holds backup archive destinations.
type BackupConfig struct {
	Dir string   `yaml:"dir" env:"BACKUP_DIR" env-default:"./backups"`
	S3  S3Config `yaml:"s3"`
}

// S3Config holds settings for an S3-compatible backup bucket.
type S3Config struct {
	Bucket          string `yaml:"bucket"            env:"BACKUP_S3_BUCKET"`
	Region          string `yaml:"region"            env:"BACKUP_S3_REGION"            env-default:"us-east-1"`
	Endpoint        string `yaml:"endpoint"          env:"BACKUP_S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id"     env:"BACKUP_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"BACKUP_S3_SECRET_ACCESS_KEY"`
	Prefix          string `yaml:"prefix"            env:"BACKUP_S3_PREFIX"            env-default:"backups/"`
	UsePathStyle    bool   `yaml:"use_path_style"    env:"BACKUP_S3_USE_PATH_STYLE"    env-default:"true"`
}

// Enabled reports whether an S3 bucket is configured.
func (s S3Config) Enabled() bool { return s.Bucket != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"        env:"LOG_LEVEL"        env-default:"info"`
	Format     string `yaml:"format"       env:"LOG_FORMAT"       env-default:"json"`
	File       string `yaml:"file"         env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"  env:"LOG_MAX_SIZE_MB"  env-default:"100"`
	MaxBackups int    `yaml:"max_backups"  env:"LOG_MAX_BACKUPS"  env-default:"5"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"30"`
}

// MetricsConfig holds Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// SplitList splits a comma separated setting, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
