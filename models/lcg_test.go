package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// fakeLLM streams chunks the way langchaingo providers do: a callback error aborts the call
// and is returned wrapped.
type fakeLLM struct {
	chunks    []string
	stream    bool
	err       error
	options   llms.CallOptions
	delivered int
}

func (f *fakeLLM) GenerateContent(
	ctx context.Context,
	_ []llms.MessageContent,
	opts ...llms.CallOption,
) (*llms.ContentResponse, error) {
	for _, opt := range opts {
		opt(&f.options)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.stream && f.options.StreamingFunc != nil {
		for _, c := range f.chunks {
			f.delivered++
			if err := f.options.StreamingFunc(ctx, []byte(c)); err != nil {
				return nil, fmt.Errorf("streaming func returned an error: %w", err)
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: strings.Join(f.chunks, "")}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, opts...)
}

func TestLangChain_Generate(t *testing.T) {
	type input struct {
		chunks []string
		stream bool
	}

	type expected struct {
		full      string
		stopped   bool
		delivered int
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "streaming stops at marker",
			input: input{stream: true, chunks: []string{"Thought: add\n", "Action: {}\n", "Observation:", " 5", "\nFinal"}},
			expected: expected{
				full:      "PROMPT Observation: x\nThought: add\nAction: {}\nObservation:",
				stopped:   true,
				delivered: 3,
			},
		},
		{
			name:  "streaming without marker",
			input: input{stream: true, chunks: []string{"Thought: done\n", "Final Answer: 4"}},
			expected: expected{
				full:      "PROMPT Observation: x\nThought: done\nFinal Answer: 4",
				delivered: 2,
			},
		},
		{
			name:  "non-streaming completion is cut after marker",
			input: input{chunks: []string{"Thought: add\nObservation: 5\nFinal Answer: 5"}},
			expected: expected{
				full:    "PROMPT Observation: x\nThought: add\nObservation:",
				stopped: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeLLM{chunks: tt.input.chunks, stream: tt.input.stream}
			monitor := reagent.NewStopMonitor("")
			prompt := "PROMPT Observation: x\n"

			full, err := NewLangChain(llm).Generate(context.Background(), reagent.GenerationRequest{
				Prompt:   prompt,
				Sampling: reagent.DefaultSampling(),
				Stop:     monitor,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected.full, full)
			assert.Equal(t, tt.expected.stopped, monitor.Stopped())
			assert.Equal(t, tt.expected.delivered, llm.delivered)
		})
	}
}

func TestLangChain_SamplingOptions(t *testing.T) {
	llm := &fakeLLM{chunks: []string{"ok"}}

	_, err := NewLangChain(llm).
		WithCallOptions(llms.WithTopP(0.9)).
		Generate(context.Background(), reagent.GenerationRequest{
			Prompt:   "p",
			Sampling: reagent.DefaultSampling(),
		})

	require.NoError(t, err)
	assert.Equal(t, 0.8, llm.options.Temperature)
	assert.Equal(t, 750, llm.options.MaxTokens)
	assert.Equal(t, 1.1, llm.options.RepetitionPenalty)
	assert.Equal(t, 0.9, llm.options.TopP)
}

func TestLangChain_ErrorWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	llm := &fakeLLM{err: cause}

	_, err := NewLangChain(llm).WithModelName("gpt-4o-mini").
		Generate(context.Background(), reagent.GenerationRequest{Prompt: "p"})

	var genErr *reagent.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "langchain/gpt-4o-mini", genErr.Backend)
	assert.ErrorIs(t, err, cause)
}

func TestLangChain_Live(t *testing.T) {
	apiKey := os.Getenv("REAGENT_TEST_OPENAI_KEY")
	if apiKey == "" {
		t.Skip("REAGENT_TEST_OPENAI_KEY not set")
	}

	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel("gpt-4o-mini"))
	require.NoError(t, err)

	monitor := reagent.NewStopMonitor("")
	full, err := NewLangChain(llm).Generate(context.Background(), reagent.GenerationRequest{
		Prompt:   "Write the word Observation: followed by a long story.",
		Sampling: reagent.DefaultSampling(),
		Stop:     monitor,
	})

	require.NoError(t, err)
	assert.True(t, monitor.Stopped())
	assert.Contains(t, full, "Observation:")
}
