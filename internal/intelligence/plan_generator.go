package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/llm"
)

// GenerationDraft is a normalized generator answer before matching.
type GenerationDraft struct {
	Payload   domain.GenerationPayload
	Raw       string
	Model     string
	LatencyMs int64
}

// PlanGenerator asks the generator for a plan over a candidate list.
type PlanGenerator interface {
	// Draft builds the prompt, makes one generation call and normalizes
	// the answer.
	Draft(ctx context.Context, req domain.GenerationRequest, candidates []*domain.ExerciseRecord) (*GenerationDraft, error)

	// Available reports whether the backend can currently be reached.
	Available(ctx context.Context) bool
}

type planGenerator struct {
	client llm.LLMClient
}

// NewPlanGenerator creates a PlanGenerator backed by client. A nil client
// yields a generator whose calls fail with llm.ErrNotConfigured.
func NewPlanGenerator(client llm.LLMClient) PlanGenerator {
	return &planGenerator{client: client}
}

func (g *planGenerator) Draft(ctx context.Context, req domain.GenerationRequest, candidates []*domain.ExerciseRecord) (*GenerationDraft, error) {
	if g.client == nil {
		return nil, llm.ErrNotConfigured
	}

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskWorkout,
		SystemPrompt: workoutSystemPrompt,
		UserPrompt:   BuildWorkoutPrompt(req, candidates),
	})
	if err != nil {
		return nil, fmt.Errorf("llm workout generation failed: %w", err)
	}

	payload, err := NormalizeWorkoutResponse(resp.Text)
	if err != nil {
		return nil, err
	}

	return &GenerationDraft{
		Payload:   payload,
		Raw:       resp.Text,
		Model:     resp.Model,
		LatencyMs: resp.LatencyMs,
	}, nil
}

func (g *planGenerator) Available(ctx context.Context) bool {
	return g.client != nil && g.client.Available(ctx)
}
