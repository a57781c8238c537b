package reagent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolFunc_Call(t *testing.T) {
	type input struct {
		prefix string
		fn     func(context.Context, any) (string, error)
	}

	tests := []struct {
		name     string
		input    input
		expected string
	}{
		{
			name: "result passed through",
			input: input{fn: func(_ context.Context, in any) (string, error) {
				return "got " + in.(string), nil
			}},
			expected: "got x",
		},
		{
			name: "error rendered with prefix",
			input: input{prefix: "Error in calculation", fn: func(context.Context, any) (string, error) {
				return "", errors.New("bad expression")
			}},
			expected: "Error in calculation: bad expression",
		},
		{
			name: "default prefix",
			input: input{fn: func(context.Context, any) (string, error) {
				return "", errors.New("boom")
			}},
			expected: "Error in Echo: boom",
		},
		{
			name: "panic recovered",
			input: input{prefix: "Error in calculation", fn: func(context.Context, any) (string, error) {
				panic("unexpected input")
			}},
			expected: "Error in calculation: unexpected input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewToolFunc("Echo", "text (anything)", tt.input.prefix, tt.input.fn)
			assert.Equal(t, tt.expected, tool.Call(context.Background(), "x"))
		})
	}
}

func TestToolFunc_Metadata(t *testing.T) {
	schema := map[string]any{"type": "string"}
	tool := NewToolFunc("Echo", "text (anything)", "", nil).WithInputSchema(schema)

	assert.Equal(t, "Echo", tool.Name())
	assert.Equal(t, "text (anything)", tool.Parameters())
	assert.Equal(t, schema, tool.InputSchema())
}

func TestDefaultSampling(t *testing.T) {
	s := DefaultSampling()

	assert.Equal(t, 0.8, s.Temperature)
	assert.Equal(t, 1.1, s.RepetitionPenalty)
	assert.True(t, s.DoSample)
	assert.Equal(t, 750, s.MaxNewTokens)
	assert.True(t, s.PadWithEOS)
	assert.Equal(t, 0.8, s.EffectiveTemperature())

	s.DoSample = false
	assert.Equal(t, 0.0, s.EffectiveTemperature())
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &GenerationError{Backend: "langchain", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generation failed (langchain): connection refused", err.Error())
}
