package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config with CAMPUSEVENTS_-prefixed environment
// variables. Unset variables keep the previous value; set-but-empty
// CAMPUSEVENTS_API_PREFIX disables the endpoint fallback.
//
// Recognized variables:
//
//	CAMPUSEVENTS_API_BASE_URL
//	CAMPUSEVENTS_API_PREFIX
//	CAMPUSEVENTS_SOCKET_URL
//	CAMPUSEVENTS_REQUEST_TIMEOUT       (Go duration, e.g. "15s")
//	CAMPUSEVENTS_RETRY_MAX_ATTEMPTS
//	CAMPUSEVENTS_RETRY_BASE_DELAY      (Go duration)
//	CAMPUSEVENTS_CREDENTIAL_DB
//	CAMPUSEVENTS_HEALTH_CHECK_INTERVAL (Go duration)
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("CAMPUSEVENTS_API_BASE_URL"); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("CAMPUSEVENTS_API_PREFIX"); ok {
		cfg.APIPrefix = v
	}
	if v, ok := os.LookupEnv("CAMPUSEVENTS_SOCKET_URL"); ok && v != "" {
		cfg.SocketURL = v
	}
	if v, ok := os.LookupEnv("CAMPUSEVENTS_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := os.LookupEnv("CAMPUSEVENTS_RETRY_MAX_ATTEMPTS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryMaxAttempts = n
		}
	}
	if v, ok := os.LookupEnv("CAMPUSEVENTS_RETRY_BASE_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RetryBaseDelay = d
		}
	}
	if v, ok := os.LookupEnv("CAMPUSEVENTS_CREDENTIAL_DB"); ok && v != "" {
		cfg.CredentialDB = v
	}
	if v, ok := os.LookupEnv("CAMPUSEVENTS_HEALTH_CHECK_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HealthCheckInterval = d
		}
	}
}
