package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatCompletionsService is the slice of the OpenAI SDK the client needs.
// Tests substitute a fake.
type ChatCompletionsService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// openAIClient implements LLMClient against any OpenAI-compatible chat
// completions endpoint.
type openAIClient struct {
	cfg         LLMConfig
	completions ChatCompletionsService
	observer    Observer
}

// NewOpenAIClient creates an LLMClient backed by the OpenAI SDK. The API key
// is taken from cfg at construction. Without one, every call fails with
// ErrNotConfigured and no request is sent.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	var completions ChatCompletionsService
	if strings.TrimSpace(cfg.APIKey) != "" {
		opts := []option.RequestOption{
			option.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		}
		// The Ollama default endpoint is ignored so the SDK base URL applies.
		if ep := strings.TrimSpace(cfg.Endpoint); ep != "" && ep != DefaultConfig().Endpoint {
			if !strings.HasSuffix(ep, "/") {
				ep += "/"
			}
			opts = append(opts, option.WithBaseURL(ep))
		}
		client := openai.NewClient(opts...)
		completions = client.Chat.Completions
	}
	return newOpenAIClient(cfg, completions, observer)
}

func newOpenAIClient(cfg LLMConfig, completions ChatCompletionsService, observer Observer) *openAIClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &openAIClient{cfg: cfg, completions: completions, observer: observer}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	if c.completions == nil {
		err := fmt.Errorf("%w: no API key for provider %s", ErrNotConfigured, ProviderOpenAI)
		c.report(req.Task, start, err)
		return nil, err
	}

	temp, maxTok := c.cfg.sampling(req)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.UserPrompt))

	params := openai.ChatCompletionNewParams{
		Messages:    openai.F(messages),
		Model:       openai.F(openai.ChatModel(c.cfg.Model)),
		Temperature: openai.F(temp),
	}
	if maxTok > 0 {
		params.MaxCompletionTokens = openai.F(int64(maxTok))
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.taskDuration(req.Task))
	defer cancel()

	resp, err := c.completions.New(attemptCtx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			err = newUpstreamError(apiErr.StatusCode, apiErr.Message)
		}
		err = classifyTransportError(ctx, attemptCtx, err)
		c.report(req.Task, start, err)
		return nil, err
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: response has no choices", ErrUpstream)
		c.report(req.Task, start, err)
		return nil, err
	}

	latency := c.report(req.Task, start, nil)
	return &GenerateResponse{
		Text:      resp.Choices[0].Message.Content,
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

// Available reports whether a credential is present. It does not probe the
// network, since the OpenAI API bills even trivial requests.
func (c *openAIClient) Available(context.Context) bool {
	return c.completions != nil
}

func (c *openAIClient) report(task TaskType, start time.Time, err error) int64 {
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  ProviderOpenAI,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return latency
}
