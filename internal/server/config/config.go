// Package config handles configuration for the identity server, including
// defaults, a JSON or YAML file overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the identity server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps users in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - RedisURL: optional redis:// URL; enables update throttling.
//   - ProfileUpdatesPerMinute: per-user limit on profile updates.
type Config struct {
	ListenAddr                  string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	RedisURL                    string
	ProfileUpdatesPerMinute     int
	LogLevel                    string
	LogBackend                  string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.RedisURL = ""
	c.ProfileUpdatesPerMinute = 10
	c.LogLevel = "info"
	c.LogBackend = "slog"
}
