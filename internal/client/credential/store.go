// Package credential persists the bearer token between runs. The store is
// the single source of truth for "is there a saved credential": at most one
// token is held at a time, and its presence must mirror the session state
// (the session manager is the only writer).
//
// Consumers treat any read failure as "no saved token" so an unavailable
// store fails open to the logged-out state instead of blocking startup.
package credential

import "context"

// tokenKey is the single metadata key holding the bearer token.
const tokenKey = "token"

type Store interface {
	// Get returns the saved token, or "" when none is stored.
	Get(ctx context.Context) (string, error)

	// Set replaces the saved token.
	Set(ctx context.Context, token string) error

	// Clear removes the saved token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
