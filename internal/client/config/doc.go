// Package config loads runtime configuration for the settings client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Command-line flags set explicitly by the user.
//
// Supported flags
//
//	-c, --config string              config file
//	-a, --server-url string          base URL of the identity service
//	-d, --session-db string          SQLite file that keeps the session ("" keeps it in memory)
//	-t, --request-timeout duration   per-request timeout
//	-i, --online-check-interval duration
//	    --log-level string           debug|info|warn|error
//	    --log-backend string         slog|zap
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "session_db": "session.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
package config
