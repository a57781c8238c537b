package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rickchristie/reagent/agents/react"
	"github.com/rickchristie/reagent/internal/tt"
	"github.com/rickchristie/reagent/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLines struct {
	lines []string
}

func (s *scriptedLines) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type fakeAnswerer struct {
	answers map[string]string
	asked   []string
}

func (f *fakeAnswerer) Interact(_ context.Context, question string) (string, error) {
	f.asked = append(f.asked, question)
	if a, ok := f.answers[question]; ok {
		return a, nil
	}
	return "", errors.New("model unavailable")
}

func TestConsole(t *testing.T) {
	agent := &fakeAnswerer{answers: map[string]string{"What is 2+3?": "5"}}
	in := &scriptedLines{lines: []string{"What is 2+3?", "  ", "Who?", "EXIT", "never asked"}}
	var out, errOut bytes.Buffer

	err := console(context.Background(), in, &out, &errOut, agent)
	require.NoError(t, err)

	assert.Equal(t, []string{"What is 2+3?", "Who?"}, agent.asked)
	tt.AssertTextEqual(t, tt.JoinLines(
		"ReAct Agent Initialized. Type 'exit' to quit.",
		"",
		"Agent's Answer: 5",
		"",
		"Exiting...",
		"",
	), out.String())
	assert.Contains(t, errOut.String(), "model unavailable")
}

func TestConsole_EOF(t *testing.T) {
	var out bytes.Buffer
	err := console(context.Background(), &scriptedLines{}, &out, io.Discard, &fakeAnswerer{})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exiting...")
}

func TestConsole_WithAgent(t *testing.T) {
	service := tt.NewScriptedService().
		AddResponse("\nThought: I know this.\nFinal Answer: Rome")
	registry := toolchain.MustNewRegistry(tt.NewCountingTool("Lookup", "unused"))
	agent := react.NewAgent(service, registry)

	var out bytes.Buffer
	err := console(context.Background(), &scriptedLines{lines: []string{"Capital of Italy?", "exit"}}, &out, io.Discard, agent)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Agent's Answer: Rome\n")
}
