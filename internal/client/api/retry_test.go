package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeTransport counts round trips and delegates to fn.
type fakeTransport struct {
	calls atomic.Int32
	fn    func(req *http.Request) (*http.Response, error)
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return f.fn(req)
}

func clientWithTransport(t *testing.T, ft *fakeTransport, maxAttempts int) *Client {
	t.Helper()
	c := New(Options{
		BaseURL:     "http://backend.test",
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
	})
	c.http.Transport = ft
	return c
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestRetry_NetworkErrorRetriedUpToBudget(t *testing.T) {
	ft := &fakeTransport{fn: func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}}
	c := clientWithTransport(t, ft, 3)

	_, err := c.Get(context.Background(), "/events")
	require.Error(t, err)
	require.True(t, IsNetworkError(err))
	require.Equal(t, int32(3), ft.calls.Load())
}

func TestRetry_SucceedsBeforeBudgetExhausted(t *testing.T) {
	ft := &fakeTransport{}
	ft.fn = func(req *http.Request) (*http.Response, error) {
		if ft.calls.Load() < 2 {
			return nil, errors.New("timeout")
		}
		return jsonResponse(http.StatusOK, ""), nil
	}
	c := clientWithTransport(t, ft, 5)

	_, err := c.Get(context.Background(), "/events")
	require.NoError(t, err)
	require.Equal(t, int32(2), ft.calls.Load())
}

func TestRetry_HTTPErrorNeverRetried(t *testing.T) {
	ft := &fakeTransport{fn: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, ""), nil
	}}
	c := clientWithTransport(t, ft, 3)

	_, err := c.Get(context.Background(), "/events")
	require.Error(t, err)
	require.Equal(t, http.StatusInternalServerError, StatusOf(err))
	require.Equal(t, int32(1), ft.calls.Load())
}

func TestRetry_ContextCancelStopsRetrying(t *testing.T) {
	ft := &fakeTransport{fn: func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("unreachable")
	}}
	c := clientWithTransport(t, ft, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, "/events")
	require.Error(t, err)
	require.LessOrEqual(t, ft.calls.Load(), int32(1))
}

func TestLinearBackoff_DelaysGrowLinearly(t *testing.T) {
	b := linearBackoff(100 * time.Millisecond)
	for i := 1; i <= 3; i++ {
		d, stop := b.Next()
		require.False(t, stop)
		require.Equal(t, time.Duration(i)*100*time.Millisecond, d)
	}
}
