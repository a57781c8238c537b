package reagent

import "context"

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe an interaction at fixed points. To use hooks:
//
//  1. Implement any combination of the interfaces below
//  2. Register the value with hooks.Registry
//  3. Pass the registry to the agent with WithHooks
//
// Example:
//
//	type ToolTimer struct{}
//
//	func (ToolTimer) OnAfterToolCall(ctx context.Context, e reagent.AfterToolCallEvent) {
//	    log.Printf("%s took %v", e.ToolName, e.Duration)
//	}
//
//	registry := hooks.NewRegistry().Register(ToolTimer{})
//	agent := react.NewAgent(service, tools).WithHooks(registry)
//
// Hooks are called synchronously, in registration order, on the goroutine running the
// interaction. They must not block for long and should not panic.
// -----------------------------------------------------------------------------

// BeforeInteractionHook is notified when a question starts.
type BeforeInteractionHook interface {
	OnBeforeInteraction(ctx context.Context, event BeforeInteractionEvent)
}

// AfterInteractionHook is notified when a question ends. It is always called if
// BeforeInteractionHook was called, including when generation failed.
type AfterInteractionHook interface {
	OnAfterInteraction(ctx context.Context, event AfterInteractionEvent)
}

// BeforeGenerationHook is notified before each generation call.
type BeforeGenerationHook interface {
	OnBeforeGeneration(ctx context.Context, event BeforeGenerationEvent)
}

// AfterGenerationHook is notified after each generation call, including failed ones.
type AfterGenerationHook interface {
	OnAfterGeneration(ctx context.Context, event AfterGenerationEvent)
}

// ParseErrorHook is notified when the model's output cannot be used.
type ParseErrorHook interface {
	OnParseError(ctx context.Context, event ParseErrorEvent)
}

// BeforeToolCallHook is notified before a tool runs. It may modify event.Input.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, event *BeforeToolCallEvent)
}

// AfterToolCallHook is notified after a tool returns.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, event AfterToolCallEvent)
}
