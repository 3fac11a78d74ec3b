package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/intelligence"
	"github.com/alexanderramin/liftplan/internal/llm"
	"github.com/alexanderramin/liftplan/internal/planner"
)

type GeneratePlanRequest struct {
	domain.GenerationRequest
	CandidateLimit int
}

func NewGeneratePlanRequest(goal string, equipment []string, durationMin int, focus domain.FocusArea) GeneratePlanRequest {
	return GeneratePlanRequest{
		GenerationRequest: domain.GenerationRequest{
			Goal:            goal,
			Equipment:       equipment,
			DurationMinutes: durationMin,
			FocusArea:       focus,
		},
	}
}

type GeneratePlanResponse struct {
	GeneratedAt     time.Time            `json:"generatedAt"`
	Plan            domain.GeneratedPlan `json:"plan"`
	Model           string               `json:"model,omitempty"`
	CandidatesCount int                  `json:"candidatesCount"`
	// UnmatchedNames lists dropped suggestions on a partial match. It is
	// informational only and never part of the plan.
	UnmatchedNames []string `json:"unmatchedExercises,omitempty"`
}

type GenerateErrorCode string

const (
	ErrInvalidRequest      GenerateErrorCode = "INVALID_REQUEST"
	ErrNotConfigured       GenerateErrorCode = "NOT_CONFIGURED"
	ErrCatalogEmpty        GenerateErrorCode = "CATALOG_EMPTY"
	ErrNoCandidates        GenerateErrorCode = "NO_CANDIDATES"
	ErrUpstreamError       GenerateErrorCode = "UPSTREAM_ERROR"
	ErrNetworkError        GenerateErrorCode = "NETWORK_ERROR"
	ErrMalformedGeneration GenerateErrorCode = "MALFORMED_GENERATION"
	ErrNoExercisesMatched  GenerateErrorCode = "NO_EXERCISES_MATCHED"
	ErrInternalError       GenerateErrorCode = "INTERNAL_ERROR"
)

// Retryable reports whether a caller may retry the same request as-is.
func (c GenerateErrorCode) Retryable() bool {
	switch c {
	case ErrUpstreamError, ErrNetworkError, ErrMalformedGeneration, ErrNoExercisesMatched:
		return true
	default:
		return false
	}
}

type GenerationError struct {
	Code        GenerateErrorCode
	Message     string
	Diagnostics *domain.MatchDiagnostics
	Err         error
}

func (e *GenerationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Classify maps a pipeline error onto exactly one GenerationError code.
func Classify(err error) *GenerationError {
	if err == nil {
		return nil
	}

	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge
	}

	var noMatch *planner.NoExercisesMatchedError
	if errors.As(err, &noMatch) {
		diag := noMatch.Diagnostics
		return &GenerationError{
			Code: ErrNoExercisesMatched,
			Message: fmt.Sprintf("none of the %d suggested exercises matched the %d available catalog exercises",
				len(diag.SuggestedNames), diag.CandidatesCount),
			Diagnostics: &diag,
			Err:         err,
		}
	}

	var malformed *intelligence.MalformedGenerationError
	if errors.As(err, &malformed) {
		return &GenerationError{
			Code:    ErrMalformedGeneration,
			Message: fmt.Sprintf("generator returned an unusable %s: %v", malformedWhat(malformed.Kind), malformed.Err),
			Err:     err,
		}
	}

	var upstream *llm.UpstreamError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return &GenerationError{Code: ErrNotConfigured, Message: "plan generation is not configured: " + err.Error(), Err: err}
	case errors.Is(err, planner.ErrCatalogEmpty):
		return &GenerationError{Code: ErrCatalogEmpty, Message: "the exercise catalog is empty; import a catalog first", Err: err}
	case errors.Is(err, planner.ErrNoCandidates):
		return &GenerationError{Code: ErrNoCandidates, Message: "no catalog exercises use the selected equipment", Err: err}
	case errors.As(err, &upstream):
		return &GenerationError{Code: ErrUpstreamError, Message: fmt.Sprintf("generator responded with status %d", upstream.StatusCode), Err: err}
	case errors.Is(err, llm.ErrUpstream):
		return &GenerationError{Code: ErrUpstreamError, Message: err.Error(), Err: err}
	case errors.Is(err, llm.ErrInvalidOutput):
		return &GenerationError{Code: ErrMalformedGeneration, Message: err.Error(), Err: err}
	case errors.Is(err, llm.ErrTimeout):
		return &GenerationError{Code: ErrNetworkError, Message: "generator request timed out", Err: err}
	case errors.Is(err, llm.ErrNetwork):
		return &GenerationError{Code: ErrNetworkError, Message: "could not reach the generator", Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &GenerationError{Code: ErrNetworkError, Message: "request canceled before the generator answered", Err: err}
	default:
		return &GenerationError{Code: ErrInternalError, Message: err.Error(), Err: err}
	}
}

// NewCanceledError reports a caller cancellation that arrived during stage,
// before any generator call was made.
func NewCanceledError(stage string, err error) *GenerationError {
	return &GenerationError{
		Code:    ErrNetworkError,
		Message: "request canceled during " + stage + ", before the generator was called",
		Err:     err,
	}
}

// NewInvalidRequestError wraps a validation failure.
func NewInvalidRequestError(err error) *GenerationError {
	return &GenerationError{Code: ErrInvalidRequest, Message: err.Error(), Err: err}
}

func malformedWhat(kind intelligence.MalformedKind) string {
	if kind == intelligence.MalformedSchema {
		return "plan shape"
	}
	return "response"
}
