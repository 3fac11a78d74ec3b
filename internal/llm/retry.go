package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultRetryBase is the first backoff interval of WithRetry.
const DefaultRetryBase = 200 * time.Millisecond

type retryingClient struct {
	next       LLMClient
	maxRetries uint64
	base       time.Duration
}

// WithRetry wraps next so that transient failures are retried with
// exponential backoff, at most maxRetries times after the first attempt.
func WithRetry(next LLMClient, maxRetries int, base time.Duration) LLMClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if base <= 0 {
		base = DefaultRetryBase
	}
	return &retryingClient{next: next, maxRetries: uint64(maxRetries), base: base}
}

func (c *retryingClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var resp *GenerateResponse
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.base))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.next.Generate(ctx, req)
		if err != nil {
			if IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *retryingClient) Available(ctx context.Context) bool {
	return c.next.Available(ctx)
}

// IsTransient reports whether err is a failure that a later attempt may not
// repeat: timeouts, transport errors, and 5xx/429 upstream responses.
func IsTransient(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetwork) {
		return true
	}
	var up *UpstreamError
	if errors.As(err, &up) {
		return up.Transient()
	}
	return false
}
