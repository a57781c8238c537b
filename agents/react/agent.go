package react

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/hooks"
	"github.com/rickchristie/reagent/termination"
	"github.com/rickchristie/reagent/toolchain"
)

// DefaultMaxIterations bounds the Thought/Action/Observation cycles of one question.
const DefaultMaxIterations = 10

// Result describes a finished interaction.
type Result struct {
	RunID      string
	Answer     string
	Outcome    reagent.Outcome
	Iterations int

	// Stats counts generations, tool calls and parse errors of this interaction.
	Stats *reagent.Stats

	// Transcript is the full prompt history. It is sealed when Outcome is answered or the model
	// named an unknown tool.
	Transcript *reagent.Transcript
}

// ----------------------------------------------------------------------------
// Agent - ReAct interaction loop
// ----------------------------------------------------------------------------

// Agent answers questions with the ReAct loop:
//
//	PROMPTING -> GENERATING -> PARSING -> DISPATCHING -> GENERATING -> ...
//	                                   -> FINALIZED (Final Answer line)
//	                                   -> FAILED    (no usable action, unknown tool)
//
// Every generation continues the whole transcript so far and is cut by a fresh
// [reagent.StopMonitor] as soon as the model starts writing its own "Observation:".
//
// An Agent holds no per-question state after construction. Concurrent calls to Interact each get
// their own transcript and monitors, but registered hooks are shared and must be safe for
// concurrent use if Interact is called from several goroutines.
type Agent struct {
	service        reagent.GenerationService
	registry       *toolchain.Registry
	sampling       reagent.SamplingConfig
	stopMarker     string
	maxIterations  int
	promptTemplate *template.Template
	hooks          *hooks.Registry
	clock          reagent.Clock
}

// NewAgent creates an Agent with the given backend and tools.
// Defaults:
//   - Sampling: reagent.DefaultSampling()
//   - StopMarker: reagent.DefaultStopMarker
//   - MaxIterations: DefaultMaxIterations
//   - PromptTemplate: DefaultPromptTemplate
func NewAgent(service reagent.GenerationService, registry *toolchain.Registry) *Agent {
	if registry == nil {
		registry = toolchain.MustNewRegistry()
	}
	return &Agent{
		service:        service,
		registry:       registry,
		sampling:       reagent.DefaultSampling(),
		stopMarker:     reagent.DefaultStopMarker,
		maxIterations:  DefaultMaxIterations,
		promptTemplate: DefaultPromptTemplate,
		hooks:          hooks.NewRegistry(),
		clock:          reagent.SystemClock{},
	}
}

// WithSampling replaces the decoding parameters.
func (a *Agent) WithSampling(s reagent.SamplingConfig) *Agent {
	a.sampling = s
	return a
}

// WithStopMarker changes the marker that ends each generation step.
func (a *Agent) WithStopMarker(marker string) *Agent {
	if marker != "" {
		a.stopMarker = marker
	}
	return a
}

// WithMaxIterations bounds the number of generation calls per question. Zero removes the bound,
// which lets a misbehaving model loop forever.
func (a *Agent) WithMaxIterations(n int) *Agent {
	if n >= 0 {
		a.maxIterations = n
	}
	return a
}

// WithPromptTemplate replaces the instruction template. See [NewPromptTemplate].
func (a *Agent) WithPromptTemplate(tmpl *template.Template) *Agent {
	if tmpl != nil {
		a.promptTemplate = tmpl
	}
	return a
}

// WithClock replaces the clock used to measure durations.
func (a *Agent) WithClock(c reagent.Clock) *Agent {
	if c != nil {
		a.clock = c
	}
	return a
}

// RegisterHook adds a hook. It receives every event it implements an interface for.
func (a *Agent) RegisterHook(hook any) *Agent {
	a.hooks.Register(hook)
	return a
}

// Registry returns the agent's tools.
func (a *Agent) Registry() *toolchain.Registry {
	return a.registry
}

// Interact answers one question. Unusable model output yields [reagent.FallbackAnswer] with a
// nil error; an error is returned only when the backend fails, ctx ends or the iteration bound
// is hit.
func (a *Agent) Interact(ctx context.Context, question string) (string, error) {
	res, err := a.Run(ctx, question)
	if err != nil {
		return "", err
	}
	return res.Answer, nil
}

// Run is like Interact but returns the whole [Result].
func (a *Agent) Run(ctx context.Context, question string) (*Result, error) {
	if a.service == nil {
		return nil, reagent.ErrNilGenerationSvc
	}
	if strings.TrimSpace(question) == "" {
		return nil, reagent.ErrEmptyQuestion
	}

	prompt, err := renderPrompt(a.promptTemplate, a.registry.Tools(), question)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:      uuid.NewString(),
		Stats:      reagent.NewStats(),
		Transcript: reagent.NewTranscript(prompt),
	}
	start := a.clock.Now()
	a.hooks.FireBeforeInteraction(ctx, reagent.BeforeInteractionEvent{
		RunID:    res.RunID,
		Question: question,
	})

	err = a.loop(ctx, res)

	after := reagent.AfterInteractionEvent{
		RunID:      res.RunID,
		Question:   question,
		Answer:     res.Answer,
		Outcome:    res.Outcome,
		Iterations: res.Iterations,
		Duration:   a.clock.Now().Sub(start),
		Err:        err,
	}
	if err != nil {
		after.Outcome = reagent.OutcomeError
	}
	a.hooks.FireAfterInteraction(ctx, after)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (a *Agent) loop(ctx context.Context, res *Result) error {
	for iteration := 1; ; iteration++ {
		if a.maxIterations > 0 && iteration > a.maxIterations {
			return fmt.Errorf("%w (%d)", reagent.ErrMaxIterations, a.maxIterations)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Iterations = iteration

		content, err := a.generate(ctx, res, iteration)
		if err != nil {
			return err
		}

		if answer, ok := termination.FinalAnswer(content); ok {
			if err := res.Transcript.Append("\n" + content); err != nil {
				return err
			}
			res.Transcript.Seal()
			res.Answer = answer
			res.Outcome = reagent.OutcomeAnswered
			return nil
		}

		directive, err := toolchain.ParseContent(content)
		if err != nil {
			a.fail(ctx, res, iteration, content, err)
			return nil
		}

		observation, ok := a.dispatch(ctx, res, iteration, directive)
		if !ok {
			if err := res.Transcript.Append("\n" + content + termination.FallbackLine); err != nil {
				return err
			}
			res.Transcript.Seal()
			a.fail(ctx, res, iteration, content, fmt.Errorf("%w: %q", reagent.ErrUnknownTool, directive.Tool))
			return nil
		}

		if err := res.Transcript.Append("\n" + content + " " + observation); err != nil {
			return err
		}
	}
}

// generate runs one generation step and returns its trimmed new content.
func (a *Agent) generate(ctx context.Context, res *Result, iteration int) (string, error) {
	prompt := res.Transcript.String()
	a.hooks.FireBeforeGeneration(ctx, reagent.BeforeGenerationEvent{
		RunID:     res.RunID,
		Iteration: iteration,
		Prompt:    prompt,
	})

	monitor := reagent.NewStopMonitor(a.stopMarker)
	start := a.clock.Now()
	full, err := a.service.Generate(ctx, reagent.GenerationRequest{
		Prompt:   prompt,
		Sampling: a.sampling,
		Stop:     monitor,
	})

	after := reagent.AfterGenerationEvent{
		RunID:     res.RunID,
		Iteration: iteration,
		Stopped:   monitor.Stopped(),
		Duration:  a.clock.Now().Sub(start),
		Error:     err,
	}
	if err != nil {
		a.hooks.FireAfterGeneration(ctx, after)
		var genErr *reagent.GenerationError
		if errors.As(err, &genErr) {
			return "", fmt.Errorf("iteration %d: %w", iteration, err)
		}
		return "", fmt.Errorf("iteration %d: %w", iteration, &reagent.GenerationError{Backend: "unknown", Err: err})
	}

	content := termination.NewContent(full, prompt)
	after.NewContent = content
	res.Stats.Incr(reagent.KeyGenerations, 1)
	res.Stats.Incr(reagent.KeyNewChars, int64(len(content)))
	if monitor.Stopped() {
		res.Stats.Incr(reagent.KeyStopped, 1)
	}
	a.hooks.FireAfterGeneration(ctx, after)
	return content, nil
}

// dispatch calls the requested tool. It reports false when the tool is not registered.
func (a *Agent) dispatch(
	ctx context.Context,
	res *Result,
	iteration int,
	directive *reagent.ActionDirective,
) (string, bool) {
	if _, ok := a.registry.Lookup(directive.Tool); !ok {
		return "", false
	}

	before := &reagent.BeforeToolCallEvent{
		RunID:     res.RunID,
		Iteration: iteration,
		ToolName:  directive.Tool,
		Input:     directive.Input,
	}
	a.hooks.FireBeforeToolCall(ctx, before)

	start := a.clock.Now()
	observation, err := a.registry.Dispatch(ctx, directive.Tool, before.Input)
	if err != nil {
		return "", false
	}
	res.Stats.Incr(reagent.KeyToolCalls, 1)
	res.Stats.Incr(reagent.KeyToolCallsFor.For(directive.Tool), 1)

	a.hooks.FireAfterToolCall(ctx, reagent.AfterToolCallEvent{
		RunID:     res.RunID,
		Iteration: iteration,
		ToolName:  directive.Tool,
		Input:     before.Input,
		Output:    observation,
		Duration:  a.clock.Now().Sub(start),
	})
	return observation, true
}

func (a *Agent) fail(ctx context.Context, res *Result, iteration int, content string, err error) {
	res.Stats.Incr(reagent.KeyParseErrors, 1)
	a.hooks.FireParseError(ctx, reagent.ParseErrorEvent{
		RunID:     res.RunID,
		Iteration: iteration,
		Content:   content,
		Err:       err,
	})
	res.Answer = reagent.FallbackAnswer
	res.Outcome = reagent.OutcomeFallback
}
