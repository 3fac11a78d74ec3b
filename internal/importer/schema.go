package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// CatalogEntry is one exercise in an ExerciseDB-style catalog export.
type CatalogEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BodyPart     string   `json:"bodyPart"`
	Target       string   `json:"target"`
	Equipment    string   `json:"equipment"`
	Instructions []string `json:"instructions,omitempty"`
}

// CatalogFile is the top-level JSON structure for catalog import: a bare array
// of entries.
type CatalogFile []CatalogEntry

// LoadCatalogFile reads and parses a catalog import JSON file.
func LoadCatalogFile(path string) (CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog JSON. An object with an "exercises" array is
// accepted as well as a bare array.
func ParseCatalog(data []byte) (CatalogFile, error) {
	var entries CatalogFile
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}
	var wrapped struct {
		Exercises CatalogFile `json:"exercises"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	if wrapped.Exercises == nil {
		return nil, fmt.Errorf("parsing catalog file: expected an array of exercises")
	}
	return wrapped.Exercises, nil
}
