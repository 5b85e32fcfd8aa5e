package config

import (
	"github.com/spf13/pflag"
)

// Flags binds the client options to a flag set. Call Load after the flag
// set has been parsed.
type Flags struct {
	fs         *pflag.FlagSet
	configFile string
	values     Config
}

// RegisterFlags adds the client flags to fs with the defaults as values.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	f.values.LoadDefaults()

	fs.StringVarP(&f.configFile, "config", "c", "", "config file (JSON or YAML)")
	fs.StringVarP(&f.values.ServerURL, "server-url", "a", f.values.ServerURL, "base URL of the identity service")
	fs.StringVarP(&f.values.SessionDB, "session-db", "d", f.values.SessionDB, "SQLite file that keeps the session; empty keeps it in memory")
	fs.DurationVarP(&f.values.RequestTimeout, "request-timeout", "t", f.values.RequestTimeout, "per-request timeout")
	fs.DurationVarP(&f.values.OnlineCheckInterval, "online-check-interval", "i", f.values.OnlineCheckInterval, "online check interval")
	fs.StringVar(&f.values.LogLevel, "log-level", f.values.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&f.values.LogBackend, "log-backend", f.values.LogBackend, "log backend: slog|zap")
	return f
}

// Load builds the Config: defaults, then the config file, then every flag
// the user set explicitly.
func (f *Flags) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if f.configFile != "" {
		if err := parseFile(f.configFile, cfg); err != nil {
			return nil, err
		}
	}

	if f.fs.Changed("server-url") {
		cfg.ServerURL = f.values.ServerURL
	}
	if f.fs.Changed("session-db") {
		cfg.SessionDB = f.values.SessionDB
	}
	if f.fs.Changed("request-timeout") {
		cfg.RequestTimeout = f.values.RequestTimeout
	}
	if f.fs.Changed("online-check-interval") {
		cfg.OnlineCheckInterval = f.values.OnlineCheckInterval
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.values.LogLevel
	}
	if f.fs.Changed("log-backend") {
		cfg.LogBackend = f.values.LogBackend
	}
	return cfg, nil
}
