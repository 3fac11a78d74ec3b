package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/liftplan/internal/db"
	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/importer"
	"github.com/alexanderramin/liftplan/internal/repository"
)

type catalogService struct {
	exercises repository.ExerciseRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewCatalogService(exercises repository.ExerciseRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CatalogService {
	return &catalogService{
		exercises: exercises,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	entries, err := importer.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.ImportEntries(ctx, entries)
}

// ImportEntries validates and upserts the entries inside one transaction.
// Nothing is written when any entry fails.
func (s *catalogService) ImportEntries(ctx context.Context, entries importer.CatalogFile) (result *ImportResult, err error) {
	startedAt := nowUTC()
	fields := map[string]any{"entries": len(entries)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-catalog",
			StartedAt: startedAt,
			Duration:  sinceUTC(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateCatalog(entries); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	records := importer.Convert(entries)

	result = &ImportResult{Imported: len(records)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txExercises := repository.NewSQLiteExerciseRepo(tx)

		before, err := txExercises.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting catalog: %w", err)
		}
		for _, r := range records {
			if err := txExercises.Upsert(ctx, r); err != nil {
				return err
			}
		}
		after, err := txExercises.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting catalog: %w", err)
		}
		result.Created = after - before
		result.Updated = result.Imported - result.Created
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = result.Created
	fields["updated"] = result.Updated
	return result, nil
}

func (s *catalogService) Stats(ctx context.Context) (*CatalogStats, error) {
	total, err := s.exercises.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting catalog: %w", err)
	}
	byEquipment, err := s.exercises.CountByEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting catalog by equipment: %w", err)
	}
	return &CatalogStats{Total: total, ByEquipment: byEquipment}, nil
}

// List returns catalog records in catalog order, optionally filtered by
// equipment. A non-positive limit lists the whole catalog, or the default
// candidate cap when filtering.
func (s *catalogService) List(ctx context.Context, equipment []string, limit int) ([]*domain.ExerciseRecord, error) {
	req := domain.GenerationRequest{Equipment: equipment}
	if normalized := req.NormalizedEquipment(); len(normalized) > 0 {
		return s.exercises.FindByEquipment(ctx, normalized, limit)
	}
	return s.exercises.List(ctx, limit)
}

// Get looks id up as a catalog id first, then as the source catalog's id.
func (s *catalogService) Get(ctx context.Context, id string) (*domain.ExerciseRecord, error) {
	id = strings.TrimSpace(id)
	rec, err := s.exercises.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return s.exercises.GetByExternalID(ctx, id)
	}
	return rec, err
}
