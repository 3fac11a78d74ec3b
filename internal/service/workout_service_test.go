package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/intelligence"
	"github.com/alexanderramin/liftplan/internal/llm"
	"github.com/alexanderramin/liftplan/internal/repository"
	"github.com/alexanderramin/liftplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLMClient struct {
	response string
	err      error
	calls    int
	lastReq  llm.GenerateRequest
}

func (f *fakeLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.response, Model: "llama3.2", LatencyMs: 12}, nil
}

func (f *fakeLLMClient) Available(context.Context) bool { return f.err == nil }

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

func seedGymCatalog(t *testing.T) *repository.SQLiteExerciseRepo {
	t.Helper()
	database := testutil.NewTestDB(t)
	testutil.SeedExercises(t, database,
		testutil.NewTestExercise("Barbell Bench Press", testutil.WithExerciseID("ex-bench")),
		testutil.NewTestExercise("Dumbbell Fly", testutil.WithExerciseID("ex-fly"), testutil.WithEquipment("dumbbell")),
		testutil.NewTestExercise("Push-Up", testutil.WithExerciseID("ex-pushup"), testutil.WithEquipment("body weight")),
		testutil.NewTestExercise("Barbell Row", testutil.WithExerciseID("ex-row"), testutil.WithBodyPart("back")),
	)
	return repository.NewSQLiteExerciseRepo(database)
}

func validGenerateRequest() contract.GeneratePlanRequest {
	return contract.NewGeneratePlanRequest("Build upper body strength", []string{"Barbell", "dumbbell"}, 45, domain.FocusUpperBody)
}

func planJSON(names ...string) string {
	entries := make([]string, len(names))
	for i, n := range names {
		entries[i] = fmt.Sprintf(`{"name": %q, "sets": 4, "reps": "6-8", "restTime": 90}`, n)
	}
	return `{"name": "Push Day", "description": "Chest focus", "estimatedDuration": 50, "exercises": [` +
		strings.Join(entries, ",") + `]}`
}

func requireCode(t *testing.T, err error, code contract.GenerateErrorCode) *contract.GenerationError {
	t.Helper()
	require.Error(t, err)
	var ge *contract.GenerationError
	require.True(t, errors.As(err, &ge), "expected *contract.GenerationError, got %T", err)
	assert.Equal(t, code, ge.Code)
	return ge
}

func TestGeneratePlan_FullMatch(t *testing.T) {
	repo := seedGymCatalog(t)
	client := &fakeLLMClient{response: planJSON("barbell bench press", "Dumbbell Fly")}
	obs := &recordingObserver{}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0, obs)

	resp, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
	require.NoError(t, err)

	assert.Equal(t, "Push Day", resp.Plan.Name)
	assert.Equal(t, 50, resp.Plan.EstimatedMinutes)
	require.Len(t, resp.Plan.Exercises, 2)
	assert.Equal(t, "ex-bench", resp.Plan.Exercises[0].ExerciseID)
	assert.Equal(t, "Barbell Bench Press", resp.Plan.Exercises[0].Name)
	assert.Equal(t, "ex-fly", resp.Plan.Exercises[1].ExerciseID)
	assert.Equal(t, 3, resp.CandidatesCount, "body weight records are not candidates")
	assert.Empty(t, resp.UnmatchedNames)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.False(t, resp.GeneratedAt.IsZero())

	assert.Contains(t, client.lastReq.UserPrompt, "Barbell Row")
	assert.NotContains(t, client.lastReq.UserPrompt, "Push-Up")

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, "generate-plan", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 3, ev.Fields["candidates"])
	assert.Equal(t, 2, ev.Fields["resolved"])
	assert.NotContains(t, ev.Fields, "code")
}

func TestGeneratePlan_PartialMatchDropsUnknownNames(t *testing.T) {
	repo := seedGymCatalog(t)
	client := &fakeLLMClient{response: planJSON("Cable Crossover", "Bench Press", "Zercher Squat")}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0)

	resp, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
	require.NoError(t, err)

	require.Len(t, resp.Plan.Exercises, 1)
	assert.Equal(t, "ex-bench", resp.Plan.Exercises[0].ExerciseID)
	assert.Equal(t, []string{"Cable Crossover", "Zercher Squat"}, resp.UnmatchedNames)
}

func TestGeneratePlan_NothingMatched(t *testing.T) {
	repo := seedGymCatalog(t)
	client := &fakeLLMClient{response: planJSON("Cable Crossover", "Leg Press")}
	obs := &recordingObserver{}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0, obs)

	_, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
	ge := requireCode(t, err, contract.ErrNoExercisesMatched)

	require.NotNil(t, ge.Diagnostics)
	assert.Equal(t, []string{"Cable Crossover", "Leg Press"}, ge.Diagnostics.SuggestedNames)
	assert.Equal(t, []string{"Cable Crossover", "Leg Press"}, ge.Diagnostics.UnmatchedNames)
	assert.Equal(t, 3, ge.Diagnostics.CandidatesCount)

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "NO_EXERCISES_MATCHED", obs.events[0].Fields["code"])
}

func TestGeneratePlan_InvalidRequestNeverCallsGenerator(t *testing.T) {
	repo := seedGymCatalog(t)
	client := &fakeLLMClient{response: planJSON("Bench Press")}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0)

	req := validGenerateRequest()
	req.Goal = "   "
	_, err := svc.GeneratePlan(context.Background(), req)
	requireCode(t, err, contract.ErrInvalidRequest)
	assert.Equal(t, 0, client.calls)
}

func TestGeneratePlan_EmptyCatalog(t *testing.T) {
	repo := repository.NewSQLiteExerciseRepo(testutil.NewTestDB(t))
	client := &fakeLLMClient{response: planJSON("Bench Press")}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0)

	_, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
	requireCode(t, err, contract.ErrCatalogEmpty)
	assert.Equal(t, 0, client.calls)
}

func TestGeneratePlan_NoCandidatesForEquipment(t *testing.T) {
	repo := seedGymCatalog(t)
	client := &fakeLLMClient{response: planJSON("Bench Press")}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0)

	req := validGenerateRequest()
	req.Equipment = []string{"kettlebell"}
	_, err := svc.GeneratePlan(context.Background(), req)
	requireCode(t, err, contract.ErrNoCandidates)
	assert.Equal(t, 0, client.calls)
}

func TestGeneratePlan_CandidateLimitFromRequest(t *testing.T) {
	repo := seedGymCatalog(t)
	client := &fakeLLMClient{response: planJSON("Barbell Bench Press")}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0)

	req := validGenerateRequest()
	req.CandidateLimit = 1
	resp, err := svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CandidatesCount)
	assert.Contains(t, client.lastReq.UserPrompt, "Available exercises (1):")
}

func TestGeneratePlan_GeneratorFailuresAreClassified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code contract.GenerateErrorCode
	}{
		{"not configured", llm.ErrNotConfigured, contract.ErrNotConfigured},
		{"network", fmt.Errorf("%w: connection refused", llm.ErrNetwork), contract.ErrNetworkError},
		{"timeout", llm.ErrTimeout, contract.ErrNetworkError},
		{"upstream", &llm.UpstreamError{StatusCode: 502, Body: "bad gateway"}, contract.ErrUpstreamError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seedGymCatalog(t)
			svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(&fakeLLMClient{err: tt.err}), 0)

			_, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
			requireCode(t, err, tt.code)
		})
	}
}

func TestGeneratePlan_MalformedGeneration(t *testing.T) {
	tests := map[string]string{
		"prose":             "Sure! Here is a great workout for you.",
		"exercises missing": `{"name": "Push Day"}`,
		"exercises string":  `{"name": "Push Day", "exercises": "bench press"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			repo := seedGymCatalog(t)
			svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(&fakeLLMClient{response: raw}), 0)

			_, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
			requireCode(t, err, contract.ErrMalformedGeneration)
		})
	}
}

func TestGeneratePlan_NilClientIsNotConfigured(t *testing.T) {
	repo := seedGymCatalog(t)
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(nil), 0)

	_, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
	requireCode(t, err, contract.ErrNotConfigured)
	assert.False(t, svc.Available(context.Background()))
}

func TestGeneratePlan_LogsUseCase(t *testing.T) {
	repo := seedGymCatalog(t)
	var buf bytes.Buffer
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(&fakeLLMClient{response: planJSON("Dumbbell Fly")}), 0,
		NewLogUseCaseObserver(&buf))

	_, err := svc.GeneratePlan(context.Background(), validGenerateRequest())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "use_case=generate-plan")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "resolved=1")
}

func TestGeneratePlan_CanonicalizesFocusArea(t *testing.T) {
	repo := seedGymCatalog(t)
	client := &fakeLLMClient{response: planJSON("Dumbbell Fly")}
	svc := NewWorkoutService(repo, intelligence.NewPlanGenerator(client), 0)

	req := validGenerateRequest()
	req.FocusArea = "Upper_Body"
	_, err := svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, client.lastReq.UserPrompt, "- Focus area: Upper Body")
}

// cancelingReader fails every catalog query with the caller's context error.
type cancelingReader struct{}

func (cancelingReader) FindByEquipment(ctx context.Context, _ []string, _ int) ([]*domain.ExerciseRecord, error) {
	return nil, ctx.Err()
}

func (cancelingReader) Count(ctx context.Context) (int, error) { return 0, ctx.Err() }

func TestGeneratePlan_CanceledDuringCatalogLookup(t *testing.T) {
	client := &fakeLLMClient{response: planJSON("Barbell Bench Press")}
	svc := NewWorkoutService(cancelingReader{}, intelligence.NewPlanGenerator(client), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GeneratePlan(ctx, validGenerateRequest())
	ge := requireCode(t, err, contract.ErrNetworkError)
	assert.Contains(t, ge.Message, "catalog lookup")
	assert.NotContains(t, ge.Message, "generator answered")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.calls)
}
