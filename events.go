package reagent

import "time"

// -----------------------------------------------------------------------------
// Hook Event Interface
// -----------------------------------------------------------------------------

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// Outcome describes how an interaction ended.
type Outcome string

const (
	// OutcomeAnswered means the model produced a "Final Answer:" line.
	OutcomeAnswered Outcome = "answered"

	// OutcomeFallback means the output could not be used and [FallbackAnswer] was returned.
	OutcomeFallback Outcome = "fallback"

	// OutcomeError means the generation service failed or a limit was hit.
	OutcomeError Outcome = "error"
)

// -----------------------------------------------------------------------------
// Interaction Events
// -----------------------------------------------------------------------------

// BeforeInteractionEvent is emitted once when a question starts.
type BeforeInteractionEvent struct {
	RunID    string
	Question string
}

func (BeforeInteractionEvent) hookEvent() {}

// AfterInteractionEvent is emitted once when a question ends, whatever the outcome.
type AfterInteractionEvent struct {
	RunID      string
	Question   string
	Answer     string
	Outcome    Outcome
	Iterations int
	Duration   time.Duration

	// Err is set when Outcome is OutcomeError.
	Err error
}

func (AfterInteractionEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Generation Events
// -----------------------------------------------------------------------------

// BeforeGenerationEvent is emitted before each call to the generation service.
type BeforeGenerationEvent struct {
	RunID string

	// Iteration is 1-indexed.
	Iteration int
	Prompt    string
}

func (BeforeGenerationEvent) hookEvent() {}

// AfterGenerationEvent is emitted after each call to the generation service.
type AfterGenerationEvent struct {
	RunID     string
	Iteration int

	// NewContent is the trimmed continuation with the prompt removed.
	NewContent string

	// Stopped reports whether the stop marker ended the call.
	Stopped  bool
	Duration time.Duration
	Error    error
}

func (AfterGenerationEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Parse & Tool Events
// -----------------------------------------------------------------------------

// ParseErrorEvent is emitted when new content holds neither a final answer nor a usable action.
type ParseErrorEvent struct {
	RunID     string
	Iteration int
	Content   string
	Err       error
}

func (ParseErrorEvent) hookEvent() {}

// BeforeToolCallEvent is emitted before a tool is invoked. Hooks may replace Input.
type BeforeToolCallEvent struct {
	RunID     string
	Iteration int
	ToolName  string
	Input     any
}

func (*BeforeToolCallEvent) hookEvent() {}

// AfterToolCallEvent is emitted after a tool returns.
type AfterToolCallEvent struct {
	RunID     string
	Iteration int
	ToolName  string
	Input     any
	Output    string
	Duration  time.Duration
}

func (AfterToolCallEvent) hookEvent() {}
