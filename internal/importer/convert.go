package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms validated catalog entries into records ready for
// persistence. Call ValidateCatalog first; Convert assumes the entries are valid.
//
// Every record gets a fresh id. Records that carry an external id keep their
// stored id on upsert, so re-importing the same file updates in place.
func Convert(entries CatalogFile) []*domain.ExerciseRecord {
	now := time.Now().UTC()
	records := make([]*domain.ExerciseRecord, 0, len(entries))
	for _, e := range entries {
		r := &domain.ExerciseRecord{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(e.Name),
			BodyPart:  strings.TrimSpace(e.BodyPart),
			Target:    strings.TrimSpace(e.Target),
			Equipment: strings.ToLower(strings.TrimSpace(e.Equipment)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if id := strings.TrimSpace(e.ID); id != "" {
			r.ExternalID = &id
		}
		if steps := joinInstructions(e.Instructions); steps != "" {
			r.Instructions = &steps
		}
		records = append(records, r)
	}
	return records
}

func joinInstructions(steps []string) string {
	kept := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n")
}
