package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/repository"
	"github.com/alexanderramin/liftplan/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 64 << 10

// Handler implements the API handlers.
type Handler struct {
	workouts service.WorkoutService
	catalog  service.CatalogService
	version  string
}

func NewHandler(workouts service.WorkoutService, catalog service.CatalogService, version string) *Handler {
	return &Handler{workouts: workouts, catalog: catalog, version: version}
}

type generatePlanBody struct {
	domain.GenerationRequest
	CandidateLimit int `json:"candidateLimit,omitempty"`
}

type equipmentCount struct {
	Equipment string `json:"equipment"`
	Count     int    `json:"count"`
}

type catalogStatsResponse struct {
	Total       int              `json:"total"`
	ByEquipment []equipmentCount `json:"byEquipment"`
}

type exerciseResponse struct {
	ID           string   `json:"id"`
	ExternalID   *string  `json:"externalId,omitempty"`
	Name         string   `json:"name"`
	BodyPart     string   `json:"bodyPart"`
	Target       string   `json:"target"`
	Equipment    string   `json:"equipment"`
	Instructions []string `json:"instructions"`
}

type healthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Generator    string `json:"generator"`
	CatalogCount int    `json:"catalogCount"`
}

// GeneratePlan handles POST /v1/plans.
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var body generatePlanBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&body); err != nil {
		WriteGenerationError(w, r, contract.NewInvalidRequestError(fmt.Errorf("invalid JSON: %w", err)))
		return
	}

	req := contract.GeneratePlanRequest{
		GenerationRequest: body.GenerationRequest,
		CandidateLimit:    body.CandidateLimit,
	}
	resp, err := h.workouts.GeneratePlan(r.Context(), req)
	if err != nil {
		WriteGenerationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CatalogStats handles GET /v1/catalog/stats.
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "catalog stats failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := catalogStatsResponse{Total: stats.Total, ByEquipment: make([]equipmentCount, 0, len(stats.ByEquipment))}
	for _, ec := range stats.ByEquipment {
		resp.ByEquipment = append(resp.ByEquipment, equipmentCount{Equipment: ec.Equipment, Count: ec.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetExercise handles GET /v1/catalog/exercises/{id}.
func (h *Handler) GetExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.catalog.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		WriteProblem(w, r, http.StatusNotFound, fmt.Sprintf("exercise %q not found", id))
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "exercise lookup failed", "id", id, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := exerciseResponse{
		ID:           rec.ID,
		ExternalID:   rec.ExternalID,
		Name:         rec.Name,
		BodyPart:     rec.BodyPart,
		Target:       rec.Target,
		Equipment:    rec.Equipment,
		Instructions: []string{},
	}
	if rec.Instructions != nil && *rec.Instructions != "" {
		resp.Instructions = strings.Split(*rec.Instructions, "\n")
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /healthz. The service is healthy when the catalog is
// readable; generator reachability is reported but does not fail the check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusServiceUnavailable, "catalog store unavailable")
		return
	}

	generator := "unavailable"
	if h.workouts.Available(r.Context()) {
		generator = "available"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "healthy",
		Version:      h.version,
		Generator:    generator,
		CatalogCount: stats.Total,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
