// Package common contains shared constants and sentinel errors used across
// campusevents client components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is prepended to the token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName carries the client-generated request id.
	RequestIDHeaderName = "X-Request-Id"
)
