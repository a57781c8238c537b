package tt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rickchristie/reagent"
)

// ErrNoScriptedResponse is returned when a ScriptedService runs out of responses.
var ErrNoScriptedResponse = errors.New("no scripted response left")

// -----------------------------------------------------------------------------
// ScriptedService - implements reagent.GenerationService
// -----------------------------------------------------------------------------

type scriptedStep struct {
	continuation string
	err          error
}

// ScriptedService replays queued continuations. Each continuation is streamed word by word
// through the request's stop monitor exactly like a real backend, so a continuation that runs
// past "Observation:" is cut right after the marker.
type ScriptedService struct {
	mu       sync.Mutex
	steps    []scriptedStep
	calls    int
	requests []reagent.GenerationRequest
}

// NewScriptedService creates an empty ScriptedService.
func NewScriptedService() *ScriptedService {
	return &ScriptedService{}
}

// AddResponse queues a continuation for the next Generate call.
func (s *ScriptedService) AddResponse(continuation string) *ScriptedService {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, scriptedStep{continuation: continuation})
	return s
}

// AddError queues a failure for the next Generate call.
func (s *ScriptedService) AddError(err error) *ScriptedService {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, scriptedStep{err: err})
	return s
}

// Generate streams the next queued continuation after req.Prompt.
func (s *ScriptedService) Generate(ctx context.Context, req reagent.GenerationRequest) (string, error) {
	s.mu.Lock()
	idx := s.calls
	s.calls++
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if idx >= len(s.steps) {
		return "", fmt.Errorf("call %d: %w", idx+1, ErrNoScriptedResponse)
	}
	step := s.steps[idx]
	if step.err != nil {
		return "", step.err
	}

	full := req.Prompt
	if req.Stop != nil {
		req.Stop.Update(full)
	}
	for i, token := range Tokenize(step.continuation) {
		if req.Sampling.MaxNewTokens > 0 && i >= req.Sampling.MaxNewTokens {
			break
		}
		full += token
		if req.Stop != nil && req.Stop.Update(full) == reagent.StopStopped {
			break
		}
	}
	return full, nil
}

// CallCount returns how many times Generate was called.
func (s *ScriptedService) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Prompts returns the prompt of every Generate call, in order.
func (s *ScriptedService) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	for i, req := range s.requests {
		out[i] = req.Prompt
	}
	return out
}

// Requests returns every request received, in order.
func (s *ScriptedService) Requests() []reagent.GenerationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]reagent.GenerationRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Tokenize splits text into pseudo-tokens ending after each space or newline.
func Tokenize(text string) []string {
	var tokens []string
	start := 0
	for i, r := range text {
		if r == ' ' || r == '\n' {
			tokens = append(tokens, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// Compile-time check that ScriptedService implements reagent.GenerationService.
var _ reagent.GenerationService = (*ScriptedService)(nil)

// -----------------------------------------------------------------------------
// CountingTool - implements reagent.Tool
// -----------------------------------------------------------------------------

// CountingTool returns a fixed output and records every input it receives.
type CountingTool struct {
	name   string
	output string
	mu     sync.Mutex
	inputs []any
}

// NewCountingTool creates a tool named name that always answers output.
func NewCountingTool(name, output string) *CountingTool {
	return &CountingTool{name: name, output: output}
}

func (t *CountingTool) Name() string       { return t.name }
func (t *CountingTool) Parameters() string { return "input (any value)" }

func (t *CountingTool) Call(_ context.Context, input any) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputs = append(t.inputs, input)
	return t.output
}

// Inputs returns every input the tool was called with.
func (t *CountingTool) Inputs() []any {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]any, len(t.inputs))
	copy(out, t.inputs)
	return out
}

// Calls returns how many times the tool was called.
func (t *CountingTool) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inputs)
}

// Compile-time check that CountingTool implements reagent.Tool.
var _ reagent.Tool = (*CountingTool)(nil)

// JoinLines joins lines with "\n". It keeps multi-line expectations in tests readable.
func JoinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
