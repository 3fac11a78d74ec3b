package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/liftplan/internal/domain"
)

// SeedExercises inserts the records directly into the exercises table.
func SeedExercises(t *testing.T, database *sql.DB, records ...*domain.ExerciseRecord) {
	t.Helper()
	for _, r := range records {
		var externalID, instructions any
		if r.ExternalID != nil {
			externalID = *r.ExternalID
		}
		if r.Instructions != nil {
			instructions = *r.Instructions
		}
		_, err := database.Exec(`INSERT INTO exercises
			(id, external_id, name, body_part, target, equipment, instructions, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, externalID, r.Name, r.BodyPart, r.Target, r.Equipment, instructions,
			r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			t.Fatalf("seeding exercise %q: %v", r.Name, err)
		}
	}
}
