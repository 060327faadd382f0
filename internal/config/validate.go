package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the %s store driver", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("store.driver must be %q or %q (got %q)", DriverPostgres, DriverMemory, c.Store.Driver)
	}

	if c.Admin.Passphrase == "" && c.Admin.PassphraseHash == "" {
		return fmt.Errorf("admin.passphrase or admin.passphrase_hash must be set")
	}

	if len(c.Admin.JWTSecret) < 32 {
		return fmt.Errorf("admin.jwt_secret must be at least 32 characters (got %d)", len(c.Admin.JWTSecret))
	}

	if c.Admin.SessionTTL < 0 {
		return fmt.Errorf("admin.session_ttl must be >= 0 (got %s)", c.Admin.SessionTTL)
	}

	if c.Catalog.RefreshInterval < 0 {
		return fmt.Errorf("catalog.refresh_interval must be >= 0 (got %s)", c.Catalog.RefreshInterval)
	}

	if c.Catalog.SubmitRatePerMinute < 0 {
		return fmt.Errorf("catalog.submit_rate_per_minute must be >= 0 (got %d)", c.Catalog.SubmitRatePerMinute)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	if s := c.Backup.S3; s.Enabled() && (s.AccessKeyID == "") != (s.SecretAccessKey == "") {
		return fmt.Errorf("backup.s3 access_key_id and secret_access_key must be set together")
	}

	return nil
}
