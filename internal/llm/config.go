package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskWorkout TaskType = "workout"
)

// Provider selects the generation backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider   Provider                `yaml:"provider"`
	LogCalls   bool                    `yaml:"log_calls"`
	Endpoint   string                  `yaml:"endpoint"`
	Model      string                  `yaml:"model"`
	APIKey     string                  `yaml:"-"` // env-only, never in YAML
	TimeoutMs  int                     `yaml:"timeout_ms"`
	MaxRetries int                     `yaml:"max_retries"`
	Tasks      map[TaskType]TaskConfig `yaml:"-"`
}

// DefaultConfig returns an LLMConfig with sensible defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderOllama,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskWorkout: {Temperature: 0.7, MaxTokens: 2000},
		},
	}
}

// ApplyEnv overrides cfg with any LIFTPLAN_LLM_* variables that are set.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("LIFTPLAN_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("LIFTPLAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LIFTPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LIFTPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LIFTPLAN_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LIFTPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LIFTPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskWorkout, "LIFTPLAN_LLM_WORKOUT_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
