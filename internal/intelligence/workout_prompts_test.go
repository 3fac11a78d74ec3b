package intelligence

import (
	"strings"
	"testing"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func testRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Goal:            "build upper body strength",
		Equipment:       []string{"Dumbbell", "barbell"},
		DurationMinutes: 45,
		FocusArea:       domain.FocusUpperBody,
	}
}

func testCandidates() []*domain.ExerciseRecord {
	return []*domain.ExerciseRecord{
		testutil.NewTestExercise("Arnold Press", testutil.WithExerciseID("c0"),
			testutil.WithEquipment("dumbbell"), testutil.WithBodyPart("shoulders"), testutil.WithTarget("delts")),
		testutil.NewTestExercise("Barbell Bench Press", testutil.WithExerciseID("c1")),
		testutil.NewTestExercise("Dumbbell Row", testutil.WithExerciseID("c2"),
			testutil.WithEquipment("dumbbell"), testutil.WithBodyPart("back"), testutil.WithTarget("lats")),
	}
}

func TestBuildWorkoutPrompt_ListsEveryCandidate(t *testing.T) {
	prompt := BuildWorkoutPrompt(testRequest(), testCandidates())

	assert.Contains(t, prompt, "- Arnold Press | body part: shoulders | target: delts | equipment: dumbbell")
	assert.Contains(t, prompt, "- Barbell Bench Press | body part: chest | target: pectorals | equipment: barbell")
	assert.Contains(t, prompt, "- Dumbbell Row | body part: back | target: lats | equipment: dumbbell")
	assert.Contains(t, prompt, "Available exercises (3):")
}

func TestBuildWorkoutPrompt_StatesConstraintsAndSchema(t *testing.T) {
	prompt := BuildWorkoutPrompt(testRequest(), testCandidates())

	assert.Contains(t, prompt, "Goal: build upper body strength")
	assert.Contains(t, prompt, "Available equipment: barbell, dumbbell")
	assert.Contains(t, prompt, "Duration: 45 minutes")
	assert.Contains(t, prompt, "Focus area: Upper Body")
	assert.Contains(t, prompt, "Select 5-8 exercises")
	assert.Contains(t, prompt, "exactly as written")
	assert.Contains(t, prompt, "Return ONLY the JSON object")
	for _, field := range []string{`"name"`, `"description"`, `"estimatedDuration"`, `"exercises"`, `"sets"`, `"reps"`, `"restTime"`, `"notes"`} {
		assert.Contains(t, prompt, field)
	}
}

func TestBuildWorkoutPrompt_Deterministic(t *testing.T) {
	a := BuildWorkoutPrompt(testRequest(), testCandidates())
	b := BuildWorkoutPrompt(testRequest(), testCandidates())
	assert.Equal(t, a, b)
}

func TestBuildWorkoutPrompt_CandidateOrderPreserved(t *testing.T) {
	prompt := BuildWorkoutPrompt(testRequest(), testCandidates())

	first := strings.Index(prompt, "Arnold Press")
	second := strings.Index(prompt, "Barbell Bench Press")
	third := strings.Index(prompt, "Dumbbell Row |")
	assert.True(t, first < second && second < third)
}

func TestBuildWorkoutPrompt_BlankAttributesShowDash(t *testing.T) {
	cands := []*domain.ExerciseRecord{
		testutil.NewTestExercise("Plank", testutil.WithBodyPart(""), testutil.WithTarget(""), testutil.WithEquipment("body weight")),
	}
	prompt := BuildWorkoutPrompt(testRequest(), cands)
	assert.Contains(t, prompt, "- Plank | body part: - | target: - | equipment: body weight")
}
