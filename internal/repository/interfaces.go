package repository

import (
	"context"

	"github.com/alexanderramin/liftplan/internal/domain"
)

// ExerciseReader is the read-only view of the catalog used by plan generation.
type ExerciseReader interface {
	// FindByEquipment returns records whose equipment (case-insensitive) is in
	// the given set, ordered by name then id, truncated to limit.
	FindByEquipment(ctx context.Context, equipment []string, limit int) ([]*domain.ExerciseRecord, error)
	// Count returns the number of records in the whole catalog.
	Count(ctx context.Context) (int, error)
}

type ExerciseRepo interface {
	ExerciseReader
	Upsert(ctx context.Context, e *domain.ExerciseRecord) error
	GetByID(ctx context.Context, id string) (*domain.ExerciseRecord, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.ExerciseRecord, error)
	List(ctx context.Context, limit int) ([]*domain.ExerciseRecord, error)
	CountByEquipment(ctx context.Context) ([]domain.EquipmentCount, error)
}
