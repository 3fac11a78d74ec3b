package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/liftplan/internal/db"
	"github.com/alexanderramin/liftplan/internal/domain"
)

// DefaultCandidateLimit caps FindByEquipment when the caller passes a
// non-positive limit.
const DefaultCandidateLimit = 200

const exerciseColumns = `id, external_id, name, body_part, target, equipment, instructions, created_at, updated_at`

// SQLiteExerciseRepo implements ExerciseRepo using a SQLite database.
type SQLiteExerciseRepo struct {
	db db.DBTX
}

// NewSQLiteExerciseRepo creates a new SQLiteExerciseRepo.
func NewSQLiteExerciseRepo(conn db.DBTX) *SQLiteExerciseRepo {
	return &SQLiteExerciseRepo{db: conn}
}

// Upsert inserts the record or, when a record with the same external id (or
// id, for records without one) exists, updates it in place. The stored id of
// an existing external record is kept and written back into e.ID.
func (r *SQLiteExerciseRepo) Upsert(ctx context.Context, e *domain.ExerciseRecord) error {
	if e.ExternalID != nil {
		existing, err := r.GetByExternalID(ctx, *e.ExternalID)
		switch {
		case err == nil:
			e.ID = existing.ID
			e.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ErrNotFound):
			return err
		}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO exercises (` + exerciseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			external_id = excluded.external_id,
			name = excluded.name,
			body_part = excluded.body_part,
			target = excluded.target,
			equipment = excluded.equipment,
			instructions = excluded.instructions,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		nullableStringToValue(e.ExternalID),
		e.Name,
		e.BodyPart,
		e.Target,
		e.Equipment,
		nullableStringToValue(e.Instructions),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting exercise %q: %w", e.Name, err)
	}
	return nil
}

func (r *SQLiteExerciseRepo) GetByID(ctx context.Context, id string) (*domain.ExerciseRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)
	return r.scanExercise(row)
}

func (r *SQLiteExerciseRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.ExerciseRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE external_id = ?`, externalID)
	return r.scanExercise(row)
}

func (r *SQLiteExerciseRepo) FindByEquipment(ctx context.Context, equipment []string, limit int) ([]*domain.ExerciseRecord, error) {
	if len(equipment) == 0 {
		return []*domain.ExerciseRecord{}, nil
	}
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	args := make([]any, 0, len(equipment)+1)
	for _, e := range equipment {
		args = append(args, strings.ToLower(strings.TrimSpace(e)))
	}
	args = append(args, limit)

	query := `SELECT ` + exerciseColumns + ` FROM exercises
		WHERE LOWER(equipment) IN (` + placeholders(len(equipment)) + `)
		ORDER BY name COLLATE NOCASE, id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding exercises by equipment: %w", err)
	}
	defer rows.Close()
	return r.scanExercises(rows)
}

func (r *SQLiteExerciseRepo) List(ctx context.Context, limit int) ([]*domain.ExerciseRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY name COLLATE NOCASE, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	defer rows.Close()
	return r.scanExercises(rows)
}

func (r *SQLiteExerciseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting exercises: %w", err)
	}
	return n, nil
}

func (r *SQLiteExerciseRepo) CountByEquipment(ctx context.Context) ([]domain.EquipmentCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT LOWER(equipment), COUNT(*) FROM exercises
		GROUP BY LOWER(equipment) ORDER BY COUNT(*) DESC, LOWER(equipment)`)
	if err != nil {
		return nil, fmt.Errorf("counting exercises by equipment: %w", err)
	}
	defer rows.Close()

	var counts []domain.EquipmentCount
	for rows.Next() {
		var c domain.EquipmentCount
		if err := rows.Scan(&c.Equipment, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning equipment count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteExerciseRepo) scanExercise(row *sql.Row) (*domain.ExerciseRecord, error) {
	e, err := scanExerciseRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exercise: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	return e, nil
}

func (r *SQLiteExerciseRepo) scanExercises(rows *sql.Rows) ([]*domain.ExerciseRecord, error) {
	out := []*domain.ExerciseRecord{}
	for rows.Next() {
		e, err := scanExerciseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExerciseRow(s scanner) (*domain.ExerciseRecord, error) {
	var (
		e            domain.ExerciseRecord
		externalID   sql.NullString
		instructions sql.NullString
		createdAt    string
		updatedAt    string
	)
	if err := s.Scan(
		&e.ID,
		&externalID,
		&e.Name,
		&e.BodyPart,
		&e.Target,
		&e.Equipment,
		&instructions,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	e.ExternalID = nullableString(externalID)
	e.Instructions = nullableString(instructions)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}
