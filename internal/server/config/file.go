package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gophprofile/internal/timex"
)

// fileConfig is a DTO used only for reading configuration files. Durations
// use timex.Duration so files may write "24h" or integer nanoseconds.
type fileConfig struct {
	ListenAddr                  string          `json:"listen_addr" yaml:"listen_addr"`
	DatabaseDSN                 *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string          `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_ttl" yaml:"access_token_ttl"`
	RedisURL                    *string         `json:"redis_url" yaml:"redis_url"`
	ProfileUpdatesPerMinute     *int            `json:"profile_updates_per_minute" yaml:"profile_updates_per_minute"`
	LogLevel                    string          `json:"log_level" yaml:"log_level"`
	LogBackend                  string          `json:"log_backend" yaml:"log_backend"`
}

// parseFile overlays config with the values found in path.
func parseFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &fileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RedisURL != nil {
		config.RedisURL = *c.RedisURL
	}
	if c.ProfileUpdatesPerMinute != nil {
		config.ProfileUpdatesPerMinute = *c.ProfileUpdatesPerMinute
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogBackend != "" {
		config.LogBackend = c.LogBackend
	}
	return nil
}
