// Package config loads agent settings from a .env file, an optional YAML file and the
// environment, in that order of increasing precedence.
//
//	cfg, err := config.Load("reagent.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	agent := react.NewAgent(service, registry).
//	    WithSampling(cfg.SamplingConfig()).
//	    WithMaxIterations(cfg.MaxIterations)
//
// Environment variables use the REAGENT_ prefix, except the provider keys which keep their usual
// names (OPENAI_API_KEY, SERPAPI_API_KEY, GITHUB_TOKEN).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rickchristie/reagent"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendLangChain   = "langchain"
	BackendCompletions = "completions"
	BackendGollm       = "gollm"
	BackendGitHub      = "github"
	BackendOllama      = "ollama"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrMissingAPIKey  = errors.New("missing API key")
	ErrInvalidValue   = errors.New("invalid configuration value")
)

// Config holds every setting of the command-line programs.
type Config struct {
	Backend  string `yaml:"backend" env:"REAGENT_BACKEND"`
	Model    string `yaml:"model" env:"REAGENT_MODEL"`
	BaseURL  string `yaml:"base_url" env:"REAGENT_BASE_URL"`
	Provider string `yaml:"provider" env:"REAGENT_PROVIDER"`

	OpenAIAPIKey  string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	GitHubToken   string `yaml:"github_token" env:"GITHUB_TOKEN"`
	SerpAPIAPIKey string `yaml:"serpapi_api_key" env:"SERPAPI_API_KEY"`

	Sampling      Sampling `yaml:"sampling" envPrefix:"REAGENT_"`
	MaxIterations int      `yaml:"max_iterations" env:"REAGENT_MAX_ITERATIONS"`
	StopMarker    string   `yaml:"stop_marker" env:"REAGENT_STOP_MARKER"`

	LogLevel    string `yaml:"log_level" env:"REAGENT_LOG_LEVEL"`
	Verbose     bool   `yaml:"verbose" env:"REAGENT_VERBOSE"`
	HistoryFile string `yaml:"history_file" env:"REAGENT_HISTORY_FILE"`

	Research Research `yaml:"research" envPrefix:"REAGENT_RESEARCH_"`
}

// Sampling holds decoding overrides.
type Sampling struct {
	Temperature       float64 `yaml:"temperature" env:"TEMPERATURE"`
	RepetitionPenalty float64 `yaml:"repetition_penalty" env:"REPETITION_PENALTY"`
	DoSample          bool    `yaml:"do_sample" env:"DO_SAMPLE"`
	MaxNewTokens      int     `yaml:"max_new_tokens" env:"MAX_NEW_TOKENS"`
}

// Research holds settings of the paper research graph.
type Research struct {
	ScholarURL    string        `yaml:"scholar_url" env:"SCHOLAR_URL"`
	ScholarAPIKey string        `yaml:"scholar_api_key" env:"SCHOLAR_API_KEY"`
	PaperLimit    int           `yaml:"paper_limit" env:"PAPER_LIMIT"`
	MaxSteps      int           `yaml:"max_steps" env:"MAX_STEPS"`
	Timeout       time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	s := reagent.DefaultSampling()
	return &Config{
		Backend: BackendLangChain,
		Model:   "gpt-4o-mini",
		Sampling: Sampling{
			Temperature:       s.Temperature,
			RepetitionPenalty: s.RepetitionPenalty,
			DoSample:          s.DoSample,
			MaxNewTokens:      s.MaxNewTokens,
		},
		MaxIterations: 10,
		StopMarker:    reagent.DefaultStopMarker,
		LogLevel:      "info",
		HistoryFile:   ".reagent_history",
		Research: Research{
			ScholarURL: "https://api.semanticscholar.org",
			PaperLimit: 5,
			MaxSteps:   25,
			Timeout:    30 * time.Second,
		},
	}
}

// Load reads .env from the working directory (a missing file is fine), then path when it is not
// empty, then the process environment, and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFrom(path, env.ToMap(os.Environ()))
}

// LoadFrom is like Load but reads variables from environ only and skips .env.
func LoadFrom(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if environ == nil {
		environ = map[string]string{}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend and its credentials and the numeric ranges.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLangChain, BackendCompletions:
		if c.OpenAIAPIKey == "" && c.BaseURL == "" {
			return fmt.Errorf("%w: backend %q needs OPENAI_API_KEY or a base URL", ErrMissingAPIKey, c.Backend)
		}
	case BackendGitHub:
		if c.GitHubToken == "" {
			return fmt.Errorf("%w: backend %q needs GITHUB_TOKEN", ErrMissingAPIKey, c.Backend)
		}
	case BackendGollm:
		if c.Provider == "" {
			return fmt.Errorf("%w: backend %q needs a provider", ErrInvalidValue, c.Backend)
		}
	case BackendOllama:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	if c.Sampling.Temperature < 0 {
		return fmt.Errorf("%w: temperature %v", ErrInvalidValue, c.Sampling.Temperature)
	}
	if c.Sampling.MaxNewTokens <= 0 {
		return fmt.Errorf("%w: max_new_tokens %d", ErrInvalidValue, c.Sampling.MaxNewTokens)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations %d", ErrInvalidValue, c.MaxIterations)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SamplingConfig converts the overrides into decoding parameters.
func (c *Config) SamplingConfig() reagent.SamplingConfig {
	return reagent.SamplingConfig{
		Temperature:       c.Sampling.Temperature,
		RepetitionPenalty: c.Sampling.RepetitionPenalty,
		DoSample:          c.Sampling.DoSample,
		MaxNewTokens:      c.Sampling.MaxNewTokens,
		PadWithEOS:        true,
	}
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidValue, c.LogLevel)
	}
	return level, nil
}
