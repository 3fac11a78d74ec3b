package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/liftplan/internal/llm"
	"github.com/alexanderramin/liftplan/internal/repository"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure. It is read-only after Load
// returns.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Planner  PlannerConfig  `yaml:"planner"`
	Server   ServerConfig   `yaml:"server"`
	LLM      llm.LLMConfig  `yaml:"llm"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig contains catalog store settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// PlannerConfig contains plan generation settings.
type PlannerConfig struct {
	CandidateLimit int `yaml:"candidate_limit"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load loads configuration with precedence: defaults, then the YAML file named
// by LIFTPLAN_CONFIG (missing file is not an error), then env vars.
func Load() (*Config, error) {
	cfg, err := newDefaults()
	if err != nil {
		return nil, err
	}

	if path := os.Getenv("LIFTPLAN_CONFIG"); path != "" {
		if err := loadYAMLFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific path, which must exist.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := newDefaults()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDefaults() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(home, ".liftplan", "liftplan.db")},
		Planner:  PlannerConfig{CandidateLimit: repository.DefaultCandidateLimit},
		Server:   ServerConfig{Addr: ":8080"},
		LLM:      llm.DefaultConfig(),
		Log:      LogConfig{Level: "info", Format: "text"},
	}, nil
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTPLAN_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LIFTPLAN_CANDIDATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Planner.CandidateLimit = n
		}
	}
	if v := os.Getenv("LIFTPLAN_HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LIFTPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LIFTPLAN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	llm.ApplyEnv(&cfg.LLM)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Planner.CandidateLimit <= 0 {
		c.Planner.CandidateLimit = repository.DefaultCandidateLimit
	}
	defaults := llm.DefaultConfig()
	if c.LLM.TimeoutMs <= 0 {
		c.LLM.TimeoutMs = defaults.TimeoutMs
	}
	if c.LLM.MaxRetries < 0 {
		c.LLM.MaxRetries = defaults.MaxRetries
	}
	switch c.LLM.Provider {
	case llm.ProviderOllama, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("llm provider %q must be %q or %q", c.LLM.Provider, llm.ProviderOllama, llm.ProviderOpenAI)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q must be text or json", c.Log.Format)
	}
	return nil
}
