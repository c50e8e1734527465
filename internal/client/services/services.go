// Package services contains the application services of the campus events
// client: events and registrations, categories, users, analytics, and the
// backend liveness probe.
package services

import (
	"context"

	"github.com/dmitrijs2005/campusevents/internal/client/api"
)

// API is the transport surface the services need. Satisfied by *api.Client.
type API interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
	Put(ctx context.Context, path string, body any) (*api.Envelope, error)
	Delete(ctx context.Context, path string) (*api.Envelope, error)
}

// Ping checks backend liveness.
func Ping(ctx context.Context, a API) error {
	_, err := a.Get(ctx, "/health")
	return err
}
