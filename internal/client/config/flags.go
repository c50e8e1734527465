package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/campusevents/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-p string   API path prefix for the endpoint resolver
//	-s string   base URL of the realtime socket endpoint
//	-d string   path to the local credential database
//	-i int      health check interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-s", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.APIPrefix, "p", cfg.APIPrefix, "API path prefix tried on 404")
	fs.StringVar(&cfg.SocketURL, "s", cfg.SocketURL, "base URL of the realtime socket endpoint")
	fs.StringVar(&cfg.CredentialDB, "d", cfg.CredentialDB, "path to the local credential database")
	healthCheckInterval := fs.Int("i", int(cfg.HealthCheckInterval.Seconds()), "health check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HealthCheckInterval = time.Duration(*healthCheckInterval) * time.Second
}
