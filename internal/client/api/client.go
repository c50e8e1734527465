// Package api implements the HTTP adapter for the campus events backend:
// base URL and timeout from configuration, bearer token injection, JSON
// envelope decoding, typed error classification, linear-backoff retry of
// transport failures, and the 404 alternate-prefix fallback.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/logging"
)

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource func() string

// Options configures a Client. BaseURL is required; everything else has a
// usable zero value.
type Options struct {
	BaseURL string

	// Prefix is the path prefix the backend is assumed to mount the API
	// under (e.g. "/api"). When non-empty, a 404 on a logical path triggers
	// exactly one retry against the alternate prefix variant. Empty disables
	// the fallback.
	Prefix string

	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration

	Token  TokenSource
	Logger logging.Logger

	// OnUnauthorized is invoked when a request outside the auth endpoints
	// comes back 401, i.e. the stored credential is definitely invalid.
	// A 401 on /auth/ paths is a normal rejected-credentials case and does
	// not trigger it.
	OnUnauthorized func()
}

// Client is the HTTP adapter. All campus events requests go through Do.
type Client struct {
	baseURL        string
	prefix         string
	maxAttempts    int
	baseDelay      time.Duration
	http           *http.Client
	token          TokenSource
	log            logging.Logger
	onUnauthorized func()
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscard()
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		prefix:         opts.Prefix,
		maxAttempts:    opts.MaxAttempts,
		baseDelay:      opts.BaseDelay,
		http:           &http.Client{Timeout: opts.Timeout},
		token:          opts.Token,
		log:            opts.Logger,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// Do executes one logical request: retry of transport failures, then the
// 404 prefix fallback, then 401 classification. Body is JSON-encoded when
// non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	env, err := c.resolve(ctx, method, path, body)
	if err != nil {
		if IsUnauthorized(err) && !isAuthPath(path) && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, err
	}
	return env, nil
}

func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// once performs a single HTTP attempt and classifies the outcome.
func (c *Client) once(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			Status:  resp.StatusCode,
			Message: envelopeMessage(raw),
			Body:    raw,
		}
	}

	env := &Envelope{Success: true}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}
	return env, nil
}

// envelopeMessage pulls the server-provided message out of an error body.
// Bodies that are not envelope-shaped yield "".
func envelopeMessage(raw []byte) string {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Message
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}
