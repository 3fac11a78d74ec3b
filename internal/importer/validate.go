package importer

import (
	"fmt"
	"strings"
)

// ValidateCatalog checks the catalog entries before conversion.
// Returns a slice of all validation errors found.
func ValidateCatalog(entries CatalogFile) []error {
	var errs []error

	if len(entries) == 0 {
		return []error{fmt.Errorf("catalog contains no exercises")}
	}

	seen := make(map[string]int)
	for i, e := range entries {
		label := fmt.Sprintf("exercises[%d]", i)
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", label))
		} else {
			label = fmt.Sprintf("%s (%s)", label, e.Name)
		}
		if strings.TrimSpace(e.Equipment) == "" {
			errs = append(errs, fmt.Errorf("%s.equipment is required", label))
		}
		if id := strings.TrimSpace(e.ID); id != "" {
			if prev, dup := seen[id]; dup {
				errs = append(errs, fmt.Errorf("%s.id %q duplicates exercises[%d]", label, id, prev))
			} else {
				seen[id] = i
			}
		}
	}

	return errs
}
