package domain

import "time"

// ExerciseRecord is a single catalog entry. Records are written only by
// catalog ingestion and are read-only to plan generation.
type ExerciseRecord struct {
	ID           string
	ExternalID   *string
	Name         string
	BodyPart     string
	Target       string
	Equipment    string
	Instructions *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EquipmentCount is the number of catalog records carrying one equipment tag.
type EquipmentCount struct {
	Equipment string
	Count     int
}
