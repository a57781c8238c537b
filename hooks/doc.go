// Package hooks provides a registry for interaction lifecycle hooks and a logging hook.
//
// Hooks observe what the ReAct agent does without changing its control flow. Each hook interface
// corresponds to one event type; implement only the interfaces you need.
//
// # Hook Interfaces
//
// Interaction lifecycle:
//   - [reagent.BeforeInteractionHook] - Called once when a question starts
//   - [reagent.AfterInteractionHook] - Called once when a question ends
//
// Generation:
//   - [reagent.BeforeGenerationHook] - Called before each generation call
//   - [reagent.AfterGenerationHook] - Called after each generation call
//   - [reagent.ParseErrorHook] - Called when the output holds no answer and no usable action
//
// Tools:
//   - [reagent.BeforeToolCallHook] - Called before each tool call (can modify the input)
//   - [reagent.AfterToolCallHook] - Called after each tool call
//
// # Logging
//
// [LoggerHook] implements every interface and writes structured records through log/slog:
//
//	logger := slog.New(tint.NewHandler(os.Stderr, nil))
//	registry := hooks.NewRegistry().Register(hooks.NewLoggerHook(logger))
//
// With WithVerbose, prompts and generations are additionally dumped as YAML to a writer so the
// full transcript can be read back.
package hooks
