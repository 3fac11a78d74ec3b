package llm

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

var (
	// ErrNotConfigured indicates the backend is missing its credential or
	// endpoint. It is never retried.
	ErrNotConfigured = errors.New("llm backend not configured")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrNetwork indicates a transport failure reaching the backend.
	ErrNetwork = errors.New("llm backend unreachable")

	// ErrUpstream indicates the backend answered with a non-success response.
	ErrUpstream = errors.New("llm backend returned an error")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)

// maxBodyExcerpt bounds the upstream body kept on an UpstreamError.
const maxBodyExcerpt = 512

// UpstreamError carries the status and a body excerpt of a non-success
// backend response. It matches ErrUpstream under errors.Is.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func newUpstreamError(status int, body string) *UpstreamError {
	if len(body) > maxBodyExcerpt {
		cut := maxBodyExcerpt
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	return &UpstreamError{StatusCode: status, Body: body}
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("llm backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("llm backend returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// Transient reports whether the status is worth retrying.
func (e *UpstreamError) Transient() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}
