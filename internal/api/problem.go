package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/alexanderramin/liftplan/internal/domain"
)

const problemTypeBase = "https://liftplan.dev/errors/"

// Problem represents an RFC 7807 Problem Details response. Generation
// failures extend it with the error code and, for NO_EXERCISES_MATCHED, the
// match diagnostics.
type Problem struct {
	Type        string                   `json:"type"`
	Title       string                   `json:"title"`
	Status      int                      `json:"status"`
	Detail      string                   `json:"detail"`
	Instance    string                   `json:"instance,omitempty"`
	Code        string                   `json:"code,omitempty"`
	Retryable   bool                     `json:"retryable,omitempty"`
	Diagnostics *domain.MatchDiagnostics `json:"diagnostics,omitempty"`
}

// statusForCode maps each generation error code onto one HTTP status.
var statusForCode = map[contract.GenerateErrorCode]int{
	contract.ErrInvalidRequest:      http.StatusBadRequest,
	contract.ErrNotConfigured:       http.StatusServiceUnavailable,
	contract.ErrCatalogEmpty:        http.StatusServiceUnavailable,
	contract.ErrNoCandidates:        http.StatusUnprocessableEntity,
	contract.ErrUpstreamError:       http.StatusBadGateway,
	contract.ErrNetworkError:        http.StatusGatewayTimeout,
	contract.ErrMalformedGeneration: http.StatusBadGateway,
	contract.ErrNoExercisesMatched:  http.StatusUnprocessableEntity,
	contract.ErrInternalError:       http.StatusInternalServerError,
}

// WriteProblem writes a plain RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, Problem{
		Type:     problemTypeBase + slug(http.StatusText(status)),
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

// WriteGenerationError writes the problem document for a classified
// generation failure. Internal errors never expose their detail.
func WriteGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	ge := contract.Classify(err)
	status, ok := statusForCode[ge.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	detail := ge.Message
	if ge.Code == contract.ErrInternalError {
		slog.ErrorContext(r.Context(), "generation failed", "error", ge.Err, "path", r.URL.Path)
		detail = "Internal Server Error"
	}
	writeProblem(w, Problem{
		Type:        problemTypeBase + slug(string(ge.Code)),
		Title:       http.StatusText(status),
		Status:      status,
		Detail:      detail,
		Instance:    r.URL.Path,
		Code:        string(ge.Code),
		Retryable:   ge.Code.Retryable(),
		Diagnostics: ge.Diagnostics,
	})
}

func writeProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

func slug(s string) string {
	return strings.ToLower(strings.NewReplacer("_", "-", " ", "-").Replace(s))
}
