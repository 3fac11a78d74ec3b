package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/liftplan/internal/domain"
)

const workoutSystemPrompt = `You are a strength and conditioning coach for Liftplan, a workout planning tool.
You build single-session workout plans using only exercises from the catalog list you are given.
You answer with a single JSON object and nothing else.`

const workoutOutputSchema = `{
  "name": "short plan name",
  "description": "one or two sentences describing the session",
  "estimatedDuration": 45,
  "exercises": [
    {
      "name": "exact exercise name copied from the list",
      "sets": 3,
      "reps": "8-10",
      "restTime": 60,
      "notes": "optional coaching cue"
    }
  ]
}`

// BuildWorkoutPrompt renders the generation instruction for req over the
// given candidates. The output depends only on its inputs.
func BuildWorkoutPrompt(req domain.GenerationRequest, candidates []*domain.ExerciseRecord) string {
	var b strings.Builder

	b.WriteString("Create a workout plan with these requirements:\n")
	fmt.Fprintf(&b, "- Goal: %s\n", strings.TrimSpace(req.Goal))
	fmt.Fprintf(&b, "- Available equipment: %s\n", strings.Join(req.NormalizedEquipment(), ", "))
	fmt.Fprintf(&b, "- Duration: %d minutes\n", req.DurationMinutes)
	fmt.Fprintf(&b, "- Focus area: %s\n", focusLabel(req.FocusArea))

	fmt.Fprintf(&b, "\nAvailable exercises (%d):\n", len(candidates))
	for _, c := range candidates {
		fmt.Fprintf(&b, "- %s | body part: %s | target: %s | equipment: %s\n",
			c.Name, orDash(c.BodyPart), orDash(c.Target), orDash(c.Equipment))
	}

	b.WriteString("\nRules:\n")
	b.WriteString("1. Select 5-8 exercises from the list above.\n")
	b.WriteString("2. Copy each exercise name exactly as written in the list. Do not rename, abbreviate or invent exercises.\n")
	fmt.Fprintf(&b, "3. The whole session must fit in %d minutes including rest.\n", req.DurationMinutes)
	b.WriteString("4. reps may be a number or a range such as \"8-10\". restTime is in seconds.\n")
	b.WriteString("5. Return ONLY the JSON object below. No markdown, no commentary before or after it.\n")

	b.WriteString("\nOutput schema:\n")
	b.WriteString(workoutOutputSchema)
	b.WriteString("\n")

	return b.String()
}

func focusLabel(f domain.FocusArea) string {
	if parsed, ok := domain.ParseFocusArea(string(f)); ok {
		return parsed.Label()
	}
	return string(f)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
