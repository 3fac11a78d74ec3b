package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/intelligence"
	"github.com/alexanderramin/liftplan/internal/planner"
	"github.com/alexanderramin/liftplan/internal/repository"
)

type workoutService struct {
	exercises repository.ExerciseReader
	selector  *planner.CandidateSelector
	generator intelligence.PlanGenerator
	logger    *slog.Logger
	observer  UseCaseObserver
	now       func() time.Time
}

// NewWorkoutService wires the generation pipeline. candidateLimit caps the
// records offered to the generator; non-positive means the default.
func NewWorkoutService(
	exercises repository.ExerciseReader,
	generator intelligence.PlanGenerator,
	candidateLimit int,
	observers ...UseCaseObserver,
) WorkoutService {
	return &workoutService{
		exercises: exercises,
		selector:  planner.NewCandidateSelector(exercises, candidateLimit),
		generator: generator,
		logger:    slog.Default(),
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *workoutService) GeneratePlan(ctx context.Context, req contract.GeneratePlanRequest) (resp *contract.GeneratePlanResponse, err error) {
	startedAt := s.now()
	fields := map[string]any{
		"focus_area":   string(req.FocusArea),
		"duration_min": req.DurationMinutes,
	}
	defer func() {
		if ge := contract.Classify(err); ge != nil {
			err = ge
			fields["code"] = string(ge.Code)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if verr := req.Validate(); verr != nil {
		return nil, contract.NewInvalidRequestError(verr)
	}
	req.FocusArea, _ = domain.ParseFocusArea(string(req.FocusArea))

	selector := s.selector
	if req.CandidateLimit > 0 {
		selector = planner.NewCandidateSelector(s.exercises, req.CandidateLimit)
	}
	candidates, err := selector.Select(ctx, req.NormalizedEquipment())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, contract.NewCanceledError("catalog lookup", err)
		}
		return nil, err
	}
	fields["candidates"] = len(candidates)

	draft, err := s.generator.Draft(ctx, req.GenerationRequest, candidates)
	if err != nil {
		return nil, err
	}
	fields["model"] = draft.Model
	fields["llm_latency_ms"] = draft.LatencyMs

	result, err := planner.MatchExercises(draft.Payload.Exercises, candidates)
	fields["suggested"] = len(result.Suggested)
	fields["resolved"] = len(result.Resolved)
	fields["unmatched"] = len(result.Unmatched)
	if err != nil {
		return nil, err
	}
	if len(result.Unmatched) > 0 {
		s.logger.WarnContext(ctx, "generated exercises dropped",
			"unmatched", result.Unmatched,
			"resolved", len(result.Resolved),
			"candidates", len(candidates),
		)
	}

	plan := planner.AssemblePlan(draft.Payload, result.Resolved, req.DurationMinutes)
	return &contract.GeneratePlanResponse{
		GeneratedAt:     s.now(),
		Plan:            *plan,
		Model:           draft.Model,
		CandidatesCount: len(candidates),
		UnmatchedNames:  result.Unmatched,
	}, nil
}

func (s *workoutService) Available(ctx context.Context) bool {
	return s.generator != nil && s.generator.Available(ctx)
}
