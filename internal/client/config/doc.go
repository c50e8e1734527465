// Package config loads runtime configuration for the campus events CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed CAMPUSEVENTS_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-p string   API path prefix tried by the endpoint resolver
//	-s string   base URL of the realtime socket endpoint
//	-d string   path to the local credential database
//	-i int      backend health check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "api_prefix": "/api",
//	  "socket_url": "http://localhost:5000",
//	  "request_timeout": "15s",
//	  "retry_max_attempts": 3,
//	  "retry_base_delay": "1s",
//	  "credential_db": "campusevents.db",
//	  "health_check_interval": "3s"
//	}
package config
