package config

import "time"

// Config holds runtime settings for the campus events CLI.
//
// Fields:
//   - APIBaseURL: scheme://host:port of the backend REST API.
//   - APIPrefix: path prefix the endpoint resolver toggles on 404, e.g. "/api".
//     Empty disables the fallback.
//   - SocketURL: scheme://host:port of the realtime endpoint. Usually equals
//     APIBaseURL; the channel converts the scheme to ws(s) itself.
//   - RequestTimeout: per-request HTTP timeout.
//   - RetryMaxAttempts: total attempts per request, network failures only.
//   - RetryBaseDelay: delay before attempt n is n times this value.
//   - CredentialDB: path of the local SQLite credential database.
//   - HealthCheckInterval: how often the client probes backend reachability.
type Config struct {
	APIBaseURL          string
	APIPrefix           string
	SocketURL           string
	RequestTimeout      time.Duration
	RetryMaxAttempts    int
	RetryBaseDelay      time.Duration
	CredentialDB        string
	HealthCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.APIPrefix = "/api"
	c.SocketURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.RetryMaxAttempts = 3
	c.RetryBaseDelay = 1 * time.Second
	c.CredentialDB = "campusevents.db"
	c.HealthCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
