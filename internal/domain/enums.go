package domain

import "strings"

type FocusArea string

const (
	FocusFullBody  FocusArea = "full-body"
	FocusUpperBody FocusArea = "upper-body"
	FocusLowerBody FocusArea = "lower-body"
	FocusCore      FocusArea = "core"
)

// FocusAreas lists the accepted focus areas in display order.
var FocusAreas = []FocusArea{FocusFullBody, FocusUpperBody, FocusLowerBody, FocusCore}

// ParseFocusArea accepts the canonical form plus the underscore and
// space-separated spellings ("upper_body", "Upper Body").
func ParseFocusArea(s string) (FocusArea, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for _, f := range FocusAreas {
		if string(f) == norm {
			return f, true
		}
	}
	return "", false
}

// Label returns a human-readable name for the focus area.
func (f FocusArea) Label() string {
	switch f {
	case FocusFullBody:
		return "Full Body"
	case FocusUpperBody:
		return "Upper Body"
	case FocusLowerBody:
		return "Lower Body"
	case FocusCore:
		return "Core"
	default:
		return string(f)
	}
}

func focusAreaList() string {
	names := make([]string, len(FocusAreas))
	for i, f := range FocusAreas {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
