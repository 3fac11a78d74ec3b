package service

import (
	"context"

	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/importer"
)

type WorkoutService interface {
	// GeneratePlan runs one generation. Every failure is a
	// *contract.GenerationError.
	GeneratePlan(ctx context.Context, req contract.GeneratePlanRequest) (*contract.GeneratePlanResponse, error)
	Available(ctx context.Context) bool
}

type CatalogService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportEntries(ctx context.Context, entries importer.CatalogFile) (*ImportResult, error)
	Stats(ctx context.Context) (*CatalogStats, error)
	List(ctx context.Context, equipment []string, limit int) ([]*domain.ExerciseRecord, error)
	// Get returns one record by catalog or external id, or repository.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.ExerciseRecord, error)
}

// ImportResult reports what a catalog import wrote.
type ImportResult struct {
	Imported int
	Created  int
	Updated  int
}

// CatalogStats summarizes the stored catalog.
type CatalogStats struct {
	Total       int
	ByEquipment []domain.EquipmentCount
}
