package hooks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rickchristie/reagent"
	"gopkg.in/yaml.v3"
)

// LoggerHook logs every interaction event through slog. In verbose mode it also dumps the
// events as YAML, block scalars included, to the dump writer. Nothing is truncated in the dump.
type LoggerHook struct {
	logger  *slog.Logger
	dump    io.Writer
	verbose bool
}

// NewLoggerHook creates a LoggerHook. A nil logger uses slog.Default().
func NewLoggerHook(logger *slog.Logger) *LoggerHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggerHook{logger: logger}
}

// WithVerbose enables YAML dumps of every event to w.
func (h *LoggerHook) WithVerbose(w io.Writer) *LoggerHook {
	h.dump = w
	h.verbose = w != nil
	return h
}

// OnBeforeInteraction logs the question.
func (h *LoggerHook) OnBeforeInteraction(ctx context.Context, e reagent.BeforeInteractionEvent) {
	h.logger.InfoContext(ctx, "interaction started",
		slog.String("run_id", e.RunID),
		slog.String("question", e.Question),
	)
	h.dumpEvent("BeforeInteraction", e)
}

// OnAfterInteraction logs the outcome.
func (h *LoggerHook) OnAfterInteraction(ctx context.Context, e reagent.AfterInteractionEvent) {
	attrs := []any{
		slog.String("run_id", e.RunID),
		slog.String("outcome", string(e.Outcome)),
		slog.Int("iterations", e.Iterations),
		slog.Duration("duration", e.Duration),
	}
	if e.Err != nil {
		h.logger.ErrorContext(ctx, "interaction failed", append(attrs, slog.Any("error", e.Err))...)
	} else {
		h.logger.InfoContext(ctx, "interaction finished", append(attrs, slog.String("answer", e.Answer))...)
	}
	h.dumpEvent("AfterInteraction", e)
}

// OnBeforeGeneration logs the prompt size.
func (h *LoggerHook) OnBeforeGeneration(ctx context.Context, e reagent.BeforeGenerationEvent) {
	h.logger.DebugContext(ctx, "generation started",
		slog.String("run_id", e.RunID),
		slog.Int("iteration", e.Iteration),
		slog.Int("prompt_bytes", len(e.Prompt)),
	)
	h.dumpEvent("BeforeGeneration", e)
}

// OnAfterGeneration logs the generation result.
func (h *LoggerHook) OnAfterGeneration(ctx context.Context, e reagent.AfterGenerationEvent) {
	attrs := []any{
		slog.String("run_id", e.RunID),
		slog.Int("iteration", e.Iteration),
		slog.Bool("stopped_on_marker", e.Stopped),
		slog.Duration("duration", e.Duration),
	}
	if e.Error != nil {
		h.logger.ErrorContext(ctx, "generation failed", append(attrs, slog.Any("error", e.Error))...)
	} else {
		h.logger.DebugContext(ctx, "generation finished", append(attrs, slog.Int("new_bytes", len(e.NewContent)))...)
	}
	h.dumpEvent("AfterGeneration", e)
}

// OnParseError logs unusable model output.
func (h *LoggerHook) OnParseError(ctx context.Context, e reagent.ParseErrorEvent) {
	h.logger.WarnContext(ctx, "unusable model output",
		slog.String("run_id", e.RunID),
		slog.Int("iteration", e.Iteration),
		slog.Any("error", e.Err),
	)
	h.dumpEvent("ParseError", e)
}

// OnBeforeToolCall logs the tool name and input.
func (h *LoggerHook) OnBeforeToolCall(ctx context.Context, e *reagent.BeforeToolCallEvent) {
	h.logger.InfoContext(ctx, "calling tool",
		slog.String("run_id", e.RunID),
		slog.String("tool", e.ToolName),
		slog.Any("input", e.Input),
	)
	h.dumpEvent("BeforeToolCall", e)
}

// OnAfterToolCall logs the tool output.
func (h *LoggerHook) OnAfterToolCall(ctx context.Context, e reagent.AfterToolCallEvent) {
	h.logger.InfoContext(ctx, "tool returned",
		slog.String("run_id", e.RunID),
		slog.String("tool", e.ToolName),
		slog.String("output", e.Output),
		slog.Duration("duration", e.Duration),
	)
	h.dumpEvent("AfterToolCall", e)
}

func (h *LoggerHook) dumpEvent(name string, event any) {
	if !h.verbose {
		return
	}
	fmt.Fprintf(h.dump, "\n>>> [%s]: %s\n", name, time.Now().Format("2006-01-02 15:04:05.000"))

	data, err := yaml.Marshal(toDump(event))
	if err != nil {
		fmt.Fprintf(h.dump, "(failed to marshal: %v)\n", err)
		return
	}
	fmt.Fprint(h.dump, string(data))
}

// toDump converts errors and durations into strings; yaml.v3 cannot marshal error values and
// renders durations as raw nanoseconds.
func toDump(event any) any {
	switch e := event.(type) {
	case reagent.AfterInteractionEvent:
		return map[string]any{
			"run_id":     e.RunID,
			"question":   e.Question,
			"answer":     e.Answer,
			"outcome":    string(e.Outcome),
			"iterations": e.Iterations,
			"duration":   e.Duration.String(),
			"error":      errString(e.Err),
		}
	case reagent.AfterGenerationEvent:
		return map[string]any{
			"run_id":      e.RunID,
			"iteration":   e.Iteration,
			"new_content": e.NewContent,
			"stopped":     e.Stopped,
			"duration":    e.Duration.String(),
			"error":       errString(e.Error),
		}
	case reagent.ParseErrorEvent:
		return map[string]any{
			"run_id":    e.RunID,
			"iteration": e.Iteration,
			"content":   e.Content,
			"error":     errString(e.Err),
		}
	case reagent.AfterToolCallEvent:
		return map[string]any{
			"run_id":    e.RunID,
			"iteration": e.Iteration,
			"tool":      e.ToolName,
			"input":     e.Input,
			"output":    e.Output,
			"duration":  e.Duration.String(),
		}
	default:
		return event
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Compile-time checks that LoggerHook implements every hook interface.
var (
	_ reagent.BeforeInteractionHook = (*LoggerHook)(nil)
	_ reagent.AfterInteractionHook  = (*LoggerHook)(nil)
	_ reagent.BeforeGenerationHook  = (*LoggerHook)(nil)
	_ reagent.AfterGenerationHook   = (*LoggerHook)(nil)
	_ reagent.ParseErrorHook        = (*LoggerHook)(nil)
	_ reagent.BeforeToolCallHook    = (*LoggerHook)(nil)
	_ reagent.AfterToolCallHook     = (*LoggerHook)(nil)
)
