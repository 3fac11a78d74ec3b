package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Defaults applied to generated entries whose values are absent or invalid.
const (
	DefaultSets        = 3
	DefaultReps        = "10-12"
	DefaultRestSeconds = 60

	DefaultPlanName        = "Custom Workout"
	DefaultPlanDescription = "AI-generated workout plan"

	MaxDurationMinutes = 300
)

// GenerationRequest carries the user's training constraints for one
// generation call. It is never persisted.
type GenerationRequest struct {
	Goal            string    `json:"goal"`
	Equipment       []string  `json:"equipment"`
	DurationMinutes int       `json:"duration"`
	FocusArea       FocusArea `json:"focusArea"`
}

// NormalizedEquipment returns the equipment set lowercased, trimmed,
// de-duplicated and sorted. Empty entries are dropped.
func (r GenerationRequest) NormalizedEquipment() []string {
	seen := make(map[string]bool, len(r.Equipment))
	out := make([]string, 0, len(r.Equipment))
	for _, e := range r.Equipment {
		norm := strings.ToLower(strings.TrimSpace(e))
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	slices.Sort(out)
	return out
}

// Validate checks the request before any catalog or generator work is done.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Goal) == "" {
		return fmt.Errorf("goal is required")
	}
	if len(r.NormalizedEquipment()) == 0 {
		return fmt.Errorf("at least one piece of equipment is required")
	}
	if r.DurationMinutes <= 0 || r.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("duration must be between 1 and %d minutes, got %d", MaxDurationMinutes, r.DurationMinutes)
	}
	if _, ok := ParseFocusArea(string(r.FocusArea)); !ok {
		return fmt.Errorf("focus area %q must be one of %s", r.FocusArea, focusAreaList())
	}
	return nil
}

// GeneratedExerciseEntry is one exercise as suggested by the generator, after
// JSON decoding. Name is untrusted free text. Zero values mean the generator
// omitted the field or sent something unusable.
type GeneratedExerciseEntry struct {
	Name        string
	Sets        int
	Reps        string
	RestSeconds int
	Notes       *string
}

// GenerationPayload is a schema-valid generator response.
type GenerationPayload struct {
	Name             string
	Description      string
	EstimatedMinutes int
	Exercises        []GeneratedExerciseEntry
}

// SuggestedNames lists the exercise names in emission order.
func (p GenerationPayload) SuggestedNames() []string {
	names := make([]string, len(p.Exercises))
	for i, e := range p.Exercises {
		names[i] = e.Name
	}
	return names
}

// ResolvedExerciseEntry is a generated suggestion mapped onto a catalog record.
// ExerciseID always references a record from the candidate set.
type ResolvedExerciseEntry struct {
	ExerciseID  string  `json:"exerciseId"`
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        string  `json:"reps"`
	RestSeconds int     `json:"restTime"`
	Notes       *string `json:"notes"`
}

// GeneratedPlan is the successful result of plan generation. Exercises keep
// the generator's emission order and are never empty.
type GeneratedPlan struct {
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	EstimatedMinutes int                     `json:"estimatedDuration"`
	Exercises        []ResolvedExerciseEntry `json:"exercises"`
}

// MatchDiagnostics explains a generation where nothing resolved.
type MatchDiagnostics struct {
	SuggestedNames  []string `json:"suggestedExercises"`
	UnmatchedNames  []string `json:"unmatchedExercises"`
	CandidatesCount int      `json:"availableExercisesCount"`
}
