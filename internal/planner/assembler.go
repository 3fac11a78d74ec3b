package planner

import (
	"strings"

	"github.com/alexanderramin/liftplan/internal/domain"
)

// AssemblePlan combines resolved entries with the plan-level fields of the
// payload. Blank names and descriptions fall back to generic text and a
// non-positive duration falls back to the requested one.
func AssemblePlan(payload domain.GenerationPayload, resolved []domain.ResolvedExerciseEntry, requestedMinutes int) *domain.GeneratedPlan {
	minutes := payload.EstimatedMinutes
	if minutes <= 0 {
		minutes = requestedMinutes
	}
	exercises := make([]domain.ResolvedExerciseEntry, len(resolved))
	copy(exercises, resolved)

	return &domain.GeneratedPlan{
		Name:             domain.CoalesceStr(strings.TrimSpace(payload.Name), domain.DefaultPlanName),
		Description:      domain.CoalesceStr(strings.TrimSpace(payload.Description), domain.DefaultPlanDescription),
		EstimatedMinutes: minutes,
		Exercises:        exercises,
	}
}
