package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reagent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("", map[string]string{"OPENAI_API_KEY": "sk-test"})
	require.NoError(t, err)

	assert.Equal(t, BackendLangChain, cfg.Backend)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, 10, cfg.MaxIterations)
	assert.Equal(t, "Observation:", cfg.StopMarker)

	s := cfg.SamplingConfig()
	assert.Equal(t, 0.8, s.Temperature)
	assert.Equal(t, 1.1, s.RepetitionPenalty)
	assert.True(t, s.DoSample)
	assert.Equal(t, 750, s.MaxNewTokens)
	assert.True(t, s.PadWithEOS)
}

func TestLoadFrom_Precedence(t *testing.T) {
	path := writeFile(t, `
backend: completions
model: mistral-7b
base_url: http://localhost:8000/v1
max_iterations: 4
sampling:
  temperature: 0.5
  max_new_tokens: 300
research:
  paper_limit: 3
  timeout: 45s
`)

	cfg, err := LoadFrom(path, map[string]string{
		"REAGENT_MODEL":              "llama-3",
		"REAGENT_TEMPERATURE":        "0.2",
		"REAGENT_RESEARCH_MAX_STEPS": "7",
		"REAGENT_VERBOSE":            "true",
	})
	require.NoError(t, err)

	assert.Equal(t, BackendCompletions, cfg.Backend, "from file")
	assert.Equal(t, "llama-3", cfg.Model, "env overrides file")
	assert.Equal(t, 4, cfg.MaxIterations)
	assert.Equal(t, 0.2, cfg.Sampling.Temperature)
	assert.Equal(t, 300, cfg.Sampling.MaxNewTokens)
	assert.Equal(t, 1.1, cfg.Sampling.RepetitionPenalty, "default kept")
	assert.Equal(t, 3, cfg.Research.PaperLimit)
	assert.Equal(t, 7, cfg.Research.MaxSteps)
	assert.Equal(t, 45*time.Second, cfg.Research.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		environ  map[string]string
		expected error
	}{
		{
			name:     "missing key",
			environ:  map[string]string{},
			expected: ErrMissingAPIKey,
		},
		{
			name:     "unknown backend",
			environ:  map[string]string{"REAGENT_BACKEND": "hf"},
			expected: ErrUnknownBackend,
		},
		{
			name:     "github without token",
			environ:  map[string]string{"REAGENT_BACKEND": "github"},
			expected: ErrMissingAPIKey,
		},
		{
			name:     "gollm without provider",
			environ:  map[string]string{"REAGENT_BACKEND": "gollm"},
			expected: ErrInvalidValue,
		},
		{
			name:     "negative iterations",
			environ:  map[string]string{"REAGENT_BACKEND": "ollama", "REAGENT_MAX_ITERATIONS": "-1"},
			expected: ErrInvalidValue,
		},
		{
			name:     "bad log level",
			environ:  map[string]string{"REAGENT_BACKEND": "ollama", "REAGENT_LOG_LEVEL": "loud"},
			expected: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom("", tt.environ)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestLoadFrom_BadInputs(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = LoadFrom(writeFile(t, "backend: [unclosed"), nil)
	assert.Error(t, err)

	_, err = LoadFrom("", map[string]string{"REAGENT_MAX_ITERATIONS": "many"})
	assert.Error(t, err)
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := Default()
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg.LogLevel = in
		level, err := cfg.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, want, level)
	}
}
