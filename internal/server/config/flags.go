package config

import "github.com/spf13/pflag"

// Flags binds the server options to a flag set. Call Load after the flag
// set has been parsed.
//
// Supported flags:
//
//	-c, --config string            config file (JSON or YAML)
//	-a, --listen-addr string       HTTP bind address
//	-d, --database-dsn string      PostgreSQL DSN
//	-s, --secret-key string        JWT HMAC secret key
//	-t, --access-token-ttl duration
//	-r, --redis-url string         Redis URL for update throttling
//	    --updates-per-minute int
//	    --log-level string
//	    --log-backend string
type Flags struct {
	fs         *pflag.FlagSet
	configFile string
	values     Config
}

// RegisterFlags adds the server flags to fs. Persistent flag sets work too,
// so subcommands share them.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	f.values.LoadDefaults()

	fs.StringVarP(&f.configFile, "config", "c", "", "config file (JSON or YAML)")
	fs.StringVarP(&f.values.ListenAddr, "listen-addr", "a", f.values.ListenAddr, "address and port to run server")
	fs.StringVarP(&f.values.DatabaseDSN, "database-dsn", "d", f.values.DatabaseDSN, "database DSN; empty keeps users in memory")
	fs.StringVarP(&f.values.SecretKey, "secret-key", "s", f.values.SecretKey, "secret key")
	fs.DurationVarP(&f.values.AccessTokenValidityDuration, "access-token-ttl", "t", f.values.AccessTokenValidityDuration, "access token validity")
	fs.StringVarP(&f.values.RedisURL, "redis-url", "r", f.values.RedisURL, "redis URL; empty disables update throttling")
	fs.IntVar(&f.values.ProfileUpdatesPerMinute, "updates-per-minute", f.values.ProfileUpdatesPerMinute, "profile updates allowed per user per minute")
	fs.StringVar(&f.values.LogLevel, "log-level", f.values.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&f.values.LogBackend, "log-backend", f.values.LogBackend, "log backend: slog|zap")
	return f
}

// Load builds the Config from defaults, then the config file, then the
// flags set explicitly.
func (f *Flags) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if f.configFile != "" {
		if err := parseFile(f.configFile, cfg); err != nil {
			return nil, err
		}
	}

	if f.fs.Changed("listen-addr") {
		cfg.ListenAddr = f.values.ListenAddr
	}
	if f.fs.Changed("database-dsn") {
		cfg.DatabaseDSN = f.values.DatabaseDSN
	}
	if f.fs.Changed("secret-key") {
		cfg.SecretKey = f.values.SecretKey
	}
	if f.fs.Changed("access-token-ttl") {
		cfg.AccessTokenValidityDuration = f.values.AccessTokenValidityDuration
	}
	if f.fs.Changed("redis-url") {
		cfg.RedisURL = f.values.RedisURL
	}
	if f.fs.Changed("updates-per-minute") {
		cfg.ProfileUpdatesPerMinute = f.values.ProfileUpdatesPerMinute
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.values.LogLevel
	}
	if f.fs.Changed("log-backend") {
		cfg.LogBackend = f.values.LogBackend
	}
	return cfg, nil
}
