package planner

import (
	"testing"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string) domain.GeneratedExerciseEntry {
	return domain.GeneratedExerciseEntry{Name: name, Sets: 4, Reps: "8", RestSeconds: 90}
}

func TestFind_ExactMatchIgnoresCase(t *testing.T) {
	m := NewMatcher(testutil.Candidates("Barbell Bench Press", "Bench Press"))

	rec, kind := m.Find("bench press")
	require.NotNil(t, rec)
	assert.Equal(t, "c1", rec.ID)
	assert.Equal(t, "Bench Press", rec.Name)
	assert.Equal(t, MatchExact, kind)

	rec, _ = m.Find("BENCH PRESS")
	assert.Equal(t, "c1", rec.ID)
}

func TestFind_ExactDuplicatesFirstWins(t *testing.T) {
	m := NewMatcher(testutil.Candidates("push up", "Push Up"))

	rec, kind := m.Find("PUSH UP")
	assert.Equal(t, "c0", rec.ID)
	assert.Equal(t, MatchExact, kind)
}

func TestFind_CandidateInsideGeneratedName(t *testing.T) {
	m := NewMatcher(testutil.Candidates("Dumbbell Row"))

	rec, kind := m.Find("Seated Dumbbell Row")
	require.NotNil(t, rec)
	assert.Equal(t, "Dumbbell Row", rec.Name)
	assert.Equal(t, MatchContains, kind)
}

func TestFind_GeneratedNameInsideCandidate(t *testing.T) {
	m := NewMatcher(testutil.Candidates("Barbell Romanian Deadlift"))

	rec, kind := m.Find("romanian deadlift")
	require.NotNil(t, rec)
	assert.Equal(t, "c0", rec.ID)
	assert.Equal(t, MatchContains, kind)
}

func TestFind_ContainmentFirstHitWinsOverLongerMatch(t *testing.T) {
	m := NewMatcher(testutil.Candidates("Curl", "Leg Curl", "Lying Leg Curl"))

	rec, kind := m.Find("Lying Leg Curl Machine")
	require.NotNil(t, rec)
	assert.Equal(t, "c0", rec.ID, "first containing candidate wins, not the longest")
	assert.Equal(t, MatchContains, kind)
}

func TestFind_OverlappingFragmentsDependOnOrder(t *testing.T) {
	rec, _ := NewMatcher(testutil.Candidates("Bicep Curl", "Leg Curl")).Find("curl")
	assert.Equal(t, "Bicep Curl", rec.Name)

	rec, _ = NewMatcher(testutil.Candidates("Leg Curl", "Bicep Curl")).Find("curl")
	assert.Equal(t, "Leg Curl", rec.Name)
}

func TestFind_BlankNameNeverMatches(t *testing.T) {
	m := NewMatcher(testutil.Candidates("Plank"))

	rec, kind := m.Find("   ")
	assert.Nil(t, rec)
	assert.Equal(t, MatchNone, kind)
}

func TestFind_TrimsSurroundingWhitespace(t *testing.T) {
	m := NewMatcher(testutil.Candidates("Plank"))

	rec, kind := m.Find("  plank\n")
	require.NotNil(t, rec)
	assert.Equal(t, MatchExact, kind)
}

func TestMatch_PartialYieldSucceeds(t *testing.T) {
	cands := testutil.Candidates("Goblet Squat", "Arnold Press")

	res, err := MatchExercises([]domain.GeneratedExerciseEntry{
		entry("Goblet Squat"),
		entry("Unicorn Press"),
		entry("arnold press"),
	}, cands)

	require.NoError(t, err)
	require.Len(t, res.Resolved, 2)
	assert.Equal(t, "c0", res.Resolved[0].ExerciseID)
	assert.Equal(t, "c1", res.Resolved[1].ExerciseID)
	assert.Equal(t, "Arnold Press", res.Resolved[1].Name, "canonical catalog name is used")
	assert.Equal(t, []string{"Unicorn Press"}, res.Unmatched)
	assert.Equal(t, []string{"Goblet Squat", "Unicorn Press", "arnold press"}, res.Suggested)
	assert.Equal(t, []MatchKind{MatchExact, MatchExact}, res.Kinds)
}

func TestMatch_PreservesEmissionOrder(t *testing.T) {
	cands := testutil.Candidates("A Lift", "B Lift", "C Lift")

	res, err := MatchExercises([]domain.GeneratedExerciseEntry{
		entry("c lift"), entry("a lift"), entry("b lift"), entry("a lift"),
	}, cands)

	require.NoError(t, err)
	ids := make([]string, len(res.Resolved))
	for i, r := range res.Resolved {
		ids[i] = r.ExerciseID
	}
	assert.Equal(t, []string{"c2", "c0", "c1", "c0"}, ids)
}

func TestMatch_NothingMatchedCarriesDiagnostics(t *testing.T) {
	cands := testutil.Candidates("Goblet Squat", "Arnold Press", "Plank")

	_, err := MatchExercises([]domain.GeneratedExerciseEntry{
		entry("Flux Capacitor"), entry("Moon Walk"),
	}, cands)

	var nm *NoExercisesMatchedError
	require.ErrorAs(t, err, &nm)
	assert.ErrorIs(t, err, ErrNoExercisesMatched)
	assert.Equal(t, []string{"Flux Capacitor", "Moon Walk"}, nm.Diagnostics.SuggestedNames)
	assert.Equal(t, nm.Diagnostics.SuggestedNames, nm.Diagnostics.UnmatchedNames)
	assert.Equal(t, 3, nm.Diagnostics.CandidatesCount)
}

func TestMatch_EmptyPayloadIsNoExercisesMatched(t *testing.T) {
	_, err := MatchExercises(nil, testutil.Candidates("Plank"))

	var nm *NoExercisesMatchedError
	require.ErrorAs(t, err, &nm)
	assert.Empty(t, nm.Diagnostics.SuggestedNames)
	assert.Empty(t, nm.Diagnostics.UnmatchedNames)
	assert.Equal(t, 1, nm.Diagnostics.CandidatesCount)
}

func TestMatch_AppliesDefaults(t *testing.T) {
	res, err := MatchExercises([]domain.GeneratedExerciseEntry{
		{Name: "Plank", Sets: 0, Reps: "", RestSeconds: 0},
		{Name: "Plank", Sets: -2, Reps: "  ", RestSeconds: -30},
	}, testutil.Candidates("Plank"))

	require.NoError(t, err)
	for _, r := range res.Resolved {
		assert.Equal(t, 3, r.Sets)
		assert.Equal(t, "10-12", r.Reps)
		assert.Equal(t, 60, r.RestSeconds)
		assert.Nil(t, r.Notes)
	}
}

func TestMatch_DefaultsApplyToContainmentMatches(t *testing.T) {
	notes := "keep elbows tucked"
	res, err := MatchExercises([]domain.GeneratedExerciseEntry{
		{Name: "Seated Dumbbell Row", Notes: &notes},
	}, testutil.Candidates("Dumbbell Row"))

	require.NoError(t, err)
	r := res.Resolved[0]
	assert.Equal(t, 3, r.Sets)
	assert.Equal(t, "10-12", r.Reps)
	assert.Equal(t, 60, r.RestSeconds)
	require.NotNil(t, r.Notes)
	assert.Equal(t, notes, *r.Notes)
}

func TestMatch_KeepsGivenValues(t *testing.T) {
	res, err := MatchExercises([]domain.GeneratedExerciseEntry{
		{Name: "Plank", Sets: 2, Reps: "30s", RestSeconds: 45},
	}, testutil.Candidates("Plank"))

	require.NoError(t, err)
	assert.Equal(t, domain.ResolvedExerciseEntry{
		ExerciseID: "c0", Name: "Plank", Sets: 2, Reps: "30s", RestSeconds: 45,
	}, res.Resolved[0])
}

func TestMatch_NeverResolvesOutsideCandidates(t *testing.T) {
	cands := testutil.Candidates("Goblet Squat", "Arnold Press")
	allowed := map[string]bool{"c0": true, "c1": true}

	res, err := MatchExercises([]domain.GeneratedExerciseEntry{
		entry("Squat"), entry("Press"), entry("Barbell Back Squat"), entry("Bench"),
	}, cands)

	require.NoError(t, err)
	for _, r := range res.Resolved {
		assert.True(t, allowed[r.ExerciseID], r.ExerciseID)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	cands := testutil.Candidates("Bicep Curl", "Leg Curl", "Curl", "Hammer Curl")
	entries := []domain.GeneratedExerciseEntry{entry("curl"), entry("Hammer Curls"), entry("cable curl")}

	first, err := MatchExercises(entries, cands)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MatchExercises(entries, cands)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
