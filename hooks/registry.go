package hooks

import (
	"context"

	"github.com/rickchristie/reagent"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// Hooks can implement any combination of hook interfaces from the reagent package; they only
// receive events for the interfaces they implement.
//
//	registry := hooks.NewRegistry().
//	    Register(hooks.NewLoggerHook(logger)).
//	    Register(&MetricsHook{})
//
//	agent := react.NewAgent(service, tools).WithHooks(registry)
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all hooks before the first interaction starts.
// A nil *Registry is valid and dispatches nothing.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook. Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeInteraction dispatches to every BeforeInteractionHook.
func (r *Registry) FireBeforeInteraction(ctx context.Context, event reagent.BeforeInteractionEvent) {
	for _, h := range r.all() {
		if hook, ok := h.(reagent.BeforeInteractionHook); ok {
			hook.OnBeforeInteraction(ctx, event)
		}
	}
}

// FireAfterInteraction dispatches to every AfterInteractionHook.
func (r *Registry) FireAfterInteraction(ctx context.Context, event reagent.AfterInteractionEvent) {
	for _, h := range r.all() {
		if hook, ok := h.(reagent.AfterInteractionHook); ok {
			hook.OnAfterInteraction(ctx, event)
		}
	}
}

// FireBeforeGeneration dispatches to every BeforeGenerationHook.
func (r *Registry) FireBeforeGeneration(ctx context.Context, event reagent.BeforeGenerationEvent) {
	for _, h := range r.all() {
		if hook, ok := h.(reagent.BeforeGenerationHook); ok {
			hook.OnBeforeGeneration(ctx, event)
		}
	}
}

// FireAfterGeneration dispatches to every AfterGenerationHook.
func (r *Registry) FireAfterGeneration(ctx context.Context, event reagent.AfterGenerationEvent) {
	for _, h := range r.all() {
		if hook, ok := h.(reagent.AfterGenerationHook); ok {
			hook.OnAfterGeneration(ctx, event)
		}
	}
}

// FireParseError dispatches to every ParseErrorHook.
func (r *Registry) FireParseError(ctx context.Context, event reagent.ParseErrorEvent) {
	for _, h := range r.all() {
		if hook, ok := h.(reagent.ParseErrorHook); ok {
			hook.OnParseError(ctx, event)
		}
	}
}

// FireBeforeToolCall dispatches to every BeforeToolCallHook.
// Hooks can modify event.Input to change the tool input.
func (r *Registry) FireBeforeToolCall(ctx context.Context, event *reagent.BeforeToolCallEvent) {
	for _, h := range r.all() {
		if hook, ok := h.(reagent.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, event)
		}
	}
}

// FireAfterToolCall dispatches to every AfterToolCallHook.
func (r *Registry) FireAfterToolCall(ctx context.Context, event reagent.AfterToolCallEvent) {
	for _, h := range r.all() {
		if hook, ok := h.(reagent.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.all())
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}

func (r *Registry) all() []any {
	if r == nil {
		return nil
	}
	return r.hooks
}
