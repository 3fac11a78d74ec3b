package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns errs in order, then succeeds.
type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return &GenerateResponse{Text: "ok", Model: "test"}, nil
}

func (s *scriptedClient) Available(context.Context) bool { return true }

func TestWithRetry_RetriesTransientErrors(t *testing.T) {
	inner := &scriptedClient{errs: []error{
		ErrTimeout,
		newUpstreamError(http.StatusServiceUnavailable, "busy"),
	}}
	client := WithRetry(inner, 2, time.Millisecond)

	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskWorkout})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetry_StopsAfterMaxRetries(t *testing.T) {
	inner := &scriptedClient{errs: []error{ErrNetwork, ErrNetwork, ErrNetwork}}
	client := WithRetry(inner, 1, time.Millisecond)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskWorkout})

	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 2, inner.calls)
}

func TestWithRetry_DoesNotRetryPermanentErrors(t *testing.T) {
	cases := map[string]error{
		"not configured": ErrNotConfigured,
		"client error":   newUpstreamError(http.StatusUnauthorized, "bad key"),
		"canceled":       context.Canceled,
	}
	for name, failure := range cases {
		t.Run(name, func(t *testing.T) {
			inner := &scriptedClient{errs: []error{failure}}
			client := WithRetry(inner, 3, time.Millisecond)

			_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskWorkout})

			assert.True(t, errors.Is(err, failure) || errors.Is(err, ErrUpstream))
			assert.Equal(t, 1, inner.calls)
		})
	}
}

func TestWithRetry_ZeroRetriesSingleAttempt(t *testing.T) {
	inner := &scriptedClient{errs: []error{ErrTimeout}}
	client := WithRetry(inner, 0, time.Millisecond)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskWorkout})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, inner.calls)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(ErrTimeout))
	assert.True(t, IsTransient(ErrNetwork))
	assert.True(t, IsTransient(newUpstreamError(http.StatusInternalServerError, "")))
	assert.True(t, IsTransient(newUpstreamError(http.StatusTooManyRequests, "")))
	assert.False(t, IsTransient(newUpstreamError(http.StatusBadRequest, "")))
	assert.False(t, IsTransient(ErrNotConfigured))
	assert.False(t, IsTransient(ErrInvalidOutput))
	assert.False(t, IsTransient(nil))
}
