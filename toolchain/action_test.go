package toolchain

import (
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasActionLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "action line", input: "Thought: add\nAction:\n```", expected: true},
		{name: "action inline", input: `Action: {"action": "Calculator"}`, expected: true},
		{name: "indented action does not count", input: "Thought: x\n  Action:", expected: false},
		{name: "mentioned mid-line", input: "I will take an Action: soon", expected: false},
		{name: "empty", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasActionLine(tt.input))
		})
	}
}

func TestExtractActionBlob(t *testing.T) {
	type expected struct {
		blob  string
		found bool
	}

	tests := []struct {
		name     string
		input    string
		expected expected
	}{
		{
			name:  "fenced block",
			input: "Thought: add\nAction:\n```\n{\n  \"action\": \"Calculator\",\n  \"action_input\": \"2+2\"\n}\n```\nObservation:",
			expected: expected{
				blob:  "{\n  \"action\": \"Calculator\",\n  \"action_input\": \"2+2\"\n}",
				found: true,
			},
		},
		{
			name:  "unfenced inline",
			input: `Action: {"action": "Calculator", "action_input": "3*3"}`,
			expected: expected{
				blob:  `{"action": "Calculator", "action_input": "3*3"}`,
				found: true,
			},
		},
		{
			name:  "smallest object wins",
			input: "Action:\n```\n{\"action\": \"A\", \"action_input\": 1}\n```\nAction:\n```\n{\"action\": \"B\"}\n```",
			expected: expected{
				blob:  `{"action": "A", "action_input": 1}`,
				found: true,
			},
		},
		{
			name:  "nested object is cut at the first closing brace",
			input: `Action: {"action": "Search", "action_input": {"q": "go"}}`,
			expected: expected{
				blob:  `{"action": "Search", "action_input": {"q": "go"}`,
				found: true,
			},
		},
		{
			name:     "no braces",
			input:    "Action: Calculator 2+2",
			expected: expected{found: false},
		},
		{
			name:     "no action marker",
			input:    `{"action": "Calculator"}`,
			expected: expected{found: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, found := ExtractActionBlob(tt.input)
			assert.Equal(t, tt.expected.found, found)
			assert.Equal(t, tt.expected.blob, blob)
		})
	}
}

func TestParseAction(t *testing.T) {
	type expected struct {
		directive *reagent.ActionDirective
		malformed bool
	}

	tests := []struct {
		name     string
		input    string
		expected expected
	}{
		{
			name:  "string input",
			input: `{"action": "Calculator", "action_input": "2+2"}`,
			expected: expected{
				directive: &reagent.ActionDirective{Tool: "Calculator", Input: "2+2"},
			},
		},
		{
			name:  "number input",
			input: `{"action": "Calculator", "action_input": 4}`,
			expected: expected{
				directive: &reagent.ActionDirective{Tool: "Calculator", Input: 4.0},
			},
		},
		{
			name:  "object input",
			input: `{"action": "Search", "action_input": {"query": "go"}}`,
			expected: expected{
				directive: &reagent.ActionDirective{Tool: "Search", Input: map[string]any{"query": "go"}},
			},
		},
		{
			name:  "missing input is nil",
			input: `{"action": "Clock"}`,
			expected: expected{
				directive: &reagent.ActionDirective{Tool: "Clock"},
			},
		},
		{name: "missing action", input: `{"action_input": "2+2"}`, expected: expected{malformed: true}},
		{name: "action not a string", input: `{"action": 5}`, expected: expected{malformed: true}},
		{name: "trailing comma", input: `{"action": "Calculator",}`, expected: expected{malformed: true}},
		{name: "single quotes", input: `{'action': 'Calculator'}`, expected: expected{malformed: true}},
		{name: "array", input: `[{"action": "Calculator"}]`, expected: expected{malformed: true}},
		{name: "trailing data", input: `{"action": "A"} {"action": "B"}`, expected: expected{malformed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directive, err := ParseAction(tt.input)
			if tt.expected.malformed {
				assert.ErrorIs(t, err, reagent.ErrMalformedAction)
				assert.Nil(t, directive)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.directive, directive)
		})
	}
}

func TestParseContent(t *testing.T) {
	t.Run("no action line", func(t *testing.T) {
		_, err := ParseContent("Thought: I am thinking")
		assert.ErrorIs(t, err, reagent.ErrNoAction)
	})

	t.Run("action line without object", func(t *testing.T) {
		_, err := ParseContent("Action: Calculator")
		assert.ErrorIs(t, err, reagent.ErrNoAction)
	})

	t.Run("valid", func(t *testing.T) {
		d, err := ParseContent("Thought: add\nAction:\n```\n{\"action\": \"Calculator\", \"action_input\": \"2+2\"}\n```\nObservation:")
		require.NoError(t, err)
		assert.Equal(t, "Calculator", d.Tool)
		assert.Equal(t, "2+2", d.Input)
	})
}
