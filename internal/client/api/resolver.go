package api

import (
	"context"
	"strings"
)

// resolve tolerates drift between the client's assumed API prefix and the
// backend's actual routing: the logical path is tried verbatim first, and
// only a 404 is worth one retry against the alternate prefix variant. Any
// other failure (network, 401, 500) is a definitive outcome and aborts
// immediately.
//
// The fallback is a workaround for mismatched deploy configuration; leaving
// Prefix empty in the options disables it.
func (c *Client) resolve(ctx context.Context, method, path string, body any) (*Envelope, error) {
	env, err := c.doRetry(ctx, method, path, body)
	if err == nil || !IsNotFound(err) {
		return env, err
	}

	alt, ok := c.alternatePath(path)
	if !ok {
		return nil, err
	}

	c.log.Debug(ctx, "path not found, trying alternate prefix",
		"method", method, "path", path, "alternate", alt)
	return c.doRetry(ctx, method, alt, body)
}

// alternatePath returns the other prefix variant of path: prefixed when the
// path is bare, bare when it already carries the prefix.
func (c *Client) alternatePath(path string) (string, bool) {
	if c.prefix == "" {
		return "", false
	}
	if strings.HasPrefix(path, c.prefix+"/") {
		return strings.TrimPrefix(path, c.prefix), true
	}
	return c.prefix + path, true
}
