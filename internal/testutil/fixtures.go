package testutil

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/google/uuid"
)

// Exercise options
type ExerciseOption func(*domain.ExerciseRecord)

func WithEquipment(equipment string) ExerciseOption {
	return func(e *domain.ExerciseRecord) {
		e.Equipment = equipment
	}
}

func WithBodyPart(bodyPart string) ExerciseOption {
	return func(e *domain.ExerciseRecord) {
		e.BodyPart = bodyPart
	}
}

func WithTarget(target string) ExerciseOption {
	return func(e *domain.ExerciseRecord) {
		e.Target = target
	}
}

func WithExternalID(id string) ExerciseOption {
	return func(e *domain.ExerciseRecord) {
		e.ExternalID = &id
	}
}

func WithInstructions(steps ...string) ExerciseOption {
	return func(e *domain.ExerciseRecord) {
		joined := strings.Join(steps, "\n")
		e.Instructions = &joined
	}
}

func WithExerciseID(id string) ExerciseOption {
	return func(e *domain.ExerciseRecord) {
		e.ID = id
	}
}

// NewTestExercise builds a barbell/chest record with a fresh id.
func NewTestExercise(name string, opts ...ExerciseOption) *domain.ExerciseRecord {
	now := time.Now().UTC()
	e := &domain.ExerciseRecord{
		ID:        uuid.New().String(),
		Name:      name,
		BodyPart:  "chest",
		Target:    "pectorals",
		Equipment: "barbell",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Candidates builds an ordered candidate list from names, with ids
// "c0", "c1", ... so tests can assert on positions.
func Candidates(names ...string) []*domain.ExerciseRecord {
	out := make([]*domain.ExerciseRecord, len(names))
	for i, n := range names {
		out[i] = NewTestExercise(n, WithExerciseID("c"+strconv.Itoa(i)))
	}
	return out
}
