package api

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// linearBackoff yields base*1, base*2, base*3, ... between attempts. The
// observed client behavior is linear, not exponential, and must stay that
// way.
func linearBackoff(base time.Duration) retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return base * time.Duration(attempt), false
	})
}

// doRetry runs a single-attempt request under the retry policy: only
// NetworkError is retry-eligible, up to maxAttempts total invocations.
// An HTTP failure status propagates immediately; exhausting the budget
// surfaces the last NetworkError.
func (c *Client) doRetry(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var env *Envelope

	backoff := retry.WithMaxRetries(uint64(c.maxAttempts-1), linearBackoff(c.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var attemptErr error
		env, attemptErr = c.once(ctx, method, path, body)
		if attemptErr == nil {
			return nil
		}
		var ne *NetworkError
		if errors.As(attemptErr, &ne) {
			c.log.Warn(ctx, "transient request failure, will retry",
				"method", method, "path", path, "error", attemptErr)
			return retry.RetryableError(attemptErr)
		}
		return attemptErr
	})
	if err != nil {
		return nil, err
	}
	return env, nil
}
