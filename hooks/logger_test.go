package hooks

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggerHook_LogsStructuredRecords(t *testing.T) {
	var logs bytes.Buffer
	hook := NewLoggerHook(newTestLogger(&logs))
	ctx := context.Background()

	hook.OnBeforeInteraction(ctx, reagent.BeforeInteractionEvent{RunID: "run-1", Question: "What is 2+2?"})
	hook.OnBeforeToolCall(ctx, &reagent.BeforeToolCallEvent{RunID: "run-1", ToolName: "Calculator", Input: "2+2"})
	hook.OnAfterToolCall(ctx, reagent.AfterToolCallEvent{RunID: "run-1", ToolName: "Calculator", Output: "The result is 4."})
	hook.OnAfterInteraction(ctx, reagent.AfterInteractionEvent{RunID: "run-1", Outcome: reagent.OutcomeAnswered, Answer: "4"})

	out := logs.String()
	assert.Contains(t, out, "interaction started")
	assert.Contains(t, out, `question="What is 2+2?"`)
	assert.Contains(t, out, "tool=Calculator")
	assert.Contains(t, out, `output="The result is 4."`)
	assert.Contains(t, out, "outcome=answered")
	assert.Contains(t, out, "answer=4")
}

func TestLoggerHook_ErrorsLoggedAtErrorLevel(t *testing.T) {
	var logs bytes.Buffer
	hook := NewLoggerHook(newTestLogger(&logs))

	hook.OnAfterGeneration(context.Background(), reagent.AfterGenerationEvent{
		RunID: "run-1", Iteration: 2, Error: errors.New("connection refused"),
	})

	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestLoggerHook_VerboseDumpsYAML(t *testing.T) {
	var logs, dump bytes.Buffer
	hook := NewLoggerHook(newTestLogger(&logs)).WithVerbose(&dump)

	hook.OnAfterGeneration(context.Background(), reagent.AfterGenerationEvent{
		RunID:      "run-1",
		Iteration:  1,
		NewContent: "Thought: add\nAction:\n```\n{\"action\": \"Calculator\"}\n```",
		Stopped:    true,
		Duration:   1500 * time.Millisecond,
	})

	out := dump.String()
	assert.Contains(t, out, ">>> [AfterGeneration]")
	assert.Contains(t, out, "new_content: |-")
	assert.Contains(t, out, "stopped: true")
	assert.Contains(t, out, "duration: 1.5s")
}

func TestLoggerHook_QuietWithoutVerbose(t *testing.T) {
	var logs bytes.Buffer
	hook := NewLoggerHook(newTestLogger(&logs))

	hook.OnParseError(context.Background(), reagent.ParseErrorEvent{Err: reagent.ErrNoAction})

	assert.Contains(t, logs.String(), "unusable model output")
	assert.Nil(t, hook.dump)
}
