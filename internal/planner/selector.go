package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/repository"
)

var (
	// ErrCatalogEmpty means the catalog holds no records at all.
	ErrCatalogEmpty = errors.New("exercise catalog is empty")

	// ErrNoCandidates means the catalog has records but none use the
	// requested equipment.
	ErrNoCandidates = errors.New("no catalog exercises use the requested equipment")
)

// CandidateSelector picks the catalog records a plan may be built from.
type CandidateSelector struct {
	exercises repository.ExerciseReader
	limit     int
}

// NewCandidateSelector returns a selector capped at limit records.
// A non-positive limit uses repository.DefaultCandidateLimit.
func NewCandidateSelector(exercises repository.ExerciseReader, limit int) *CandidateSelector {
	if limit <= 0 {
		limit = repository.DefaultCandidateLimit
	}
	return &CandidateSelector{exercises: exercises, limit: limit}
}

// Limit reports the effective candidate cap.
func (s *CandidateSelector) Limit() int { return s.limit }

// Select returns the records whose equipment is in the given set, in catalog
// order. The catalog count is consulted only when nothing matches, to tell an
// empty catalog apart from an equipment set with no coverage.
func (s *CandidateSelector) Select(ctx context.Context, equipment []string) ([]*domain.ExerciseRecord, error) {
	candidates, err := s.exercises.FindByEquipment(ctx, equipment, s.limit)
	if err != nil {
		return nil, fmt.Errorf("selecting candidates: %w", err)
	}
	if len(candidates) > 0 {
		return candidates, nil
	}

	total, err := s.exercises.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting catalog: %w", err)
	}
	if total == 0 {
		return nil, ErrCatalogEmpty
	}
	return nil, fmt.Errorf("%w: %v", ErrNoCandidates, equipment)
}
