// Package lcagent runs questions through langchaingo's one-shot ReAct executor, the library
// counterpart of the hand-written loop in package react.
package lcagent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rickchristie/reagent"
	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	lctools "github.com/tmc/langchaingo/tools"
)

// DefaultMaxIterations bounds the executor's think/act rounds.
const DefaultMaxIterations = 10

// DefaultQuestion is asked when none is given.
const DefaultQuestion = "who is Massimo Mecella?"

// ErrNotFinished is returned when the executor runs out of iterations.
var ErrNotFinished = agents.ErrNotFinished

type options struct {
	maxIterations int
	logger        *slog.Logger
	recover       bool
}

// Option configures an Agent.
type Option func(*options)

// WithMaxIterations bounds the number of rounds.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithLogger logs every action, observation and final answer.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithParseRecovery feeds unparsable model output back as an observation instead of failing.
func WithParseRecovery() Option {
	return func(o *options) {
		o.recover = true
	}
}

// Agent wraps an executor. It is safe for sequential use only.
type Agent struct {
	executor *agents.Executor
	tools    []lctools.Tool
}

// New builds a one-shot agent over llm and tools.
func New(llm llms.Model, tools []lctools.Tool, opts ...Option) *Agent {
	o := options{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&o)
	}

	var agentOpts []agents.Option
	execOpts := []agents.Option{agents.WithMaxIterations(o.maxIterations)}
	if o.logger != nil {
		handler := NewSlogHandler(o.logger)
		agentOpts = append(agentOpts, agents.WithCallbacksHandler(handler))
		execOpts = append(execOpts, agents.WithCallbacksHandler(handler))
	}
	if o.recover {
		execOpts = append(execOpts, agents.WithParserErrorHandler(agents.NewParserErrorHandler(nil)))
	}

	return &Agent{
		executor: agents.NewExecutor(agents.NewOneShotAgent(llm, tools, agentOpts...), execOpts...),
		tools:    tools,
	}
}

// Tools returns the tools the agent may call.
func (a *Agent) Tools() []lctools.Tool {
	return a.tools
}

// Run answers question, or DefaultQuestion when empty.
func (a *Agent) Run(ctx context.Context, question string) (string, error) {
	if question == "" {
		question = DefaultQuestion
	}
	answer, err := chains.Run(ctx, a.executor, question)
	if err != nil {
		return "", fmt.Errorf("run %q: %w", question, err)
	}
	return answer, nil
}

// -----------------------------------------------------------------------------
// Tool adapter
// -----------------------------------------------------------------------------

// FromTool exposes a reagent tool to the executor. The text input is passed through unchanged.
func FromTool(t reagent.Tool, description string) lctools.Tool {
	if description == "" {
		description = t.Parameters()
	}
	return toolAdapter{tool: t, description: description}
}

type toolAdapter struct {
	tool        reagent.Tool
	description string
}

func (t toolAdapter) Name() string        { return t.tool.Name() }
func (t toolAdapter) Description() string { return t.description }

func (t toolAdapter) Call(ctx context.Context, input string) (string, error) {
	return t.tool.Call(ctx, input), nil
}

// -----------------------------------------------------------------------------
// SlogHandler - implements callbacks.Handler
// -----------------------------------------------------------------------------

// SlogHandler logs executor progress. Unhandled callbacks are no-ops.
type SlogHandler struct {
	callbacks.SimpleHandler
	logger *slog.Logger
}

// NewSlogHandler creates a handler writing to logger.
func NewSlogHandler(logger *slog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

func (h *SlogHandler) HandleAgentAction(ctx context.Context, action schema.AgentAction) {
	h.logger.InfoContext(ctx, "agent action", "tool", action.Tool, "input", action.ToolInput)
}

func (h *SlogHandler) HandleAgentFinish(ctx context.Context, finish schema.AgentFinish) {
	h.logger.InfoContext(ctx, "agent finish", "output", finish.ReturnValues["output"])
}

func (h *SlogHandler) HandleChainEnd(ctx context.Context, outputs map[string]any) {
	h.logger.DebugContext(ctx, "model output", "text", outputs["text"])
}

func (h *SlogHandler) HandleLLMError(ctx context.Context, err error) {
	h.logger.ErrorContext(ctx, "model error", "error", err)
}

func (h *SlogHandler) HandleChainError(ctx context.Context, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	h.logger.ErrorContext(ctx, "chain error", "error", err)
}

var _ callbacks.Handler = (*SlogHandler)(nil)
