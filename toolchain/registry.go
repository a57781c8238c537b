package toolchain

import (
	"context"
	"fmt"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/schema"
)

// Registry is an immutable, ordered set of tools.
type Registry struct {
	tools   []reagent.Tool
	byName  map[string]reagent.Tool
	schemas map[string]*schema.Schema
}

// NewRegistry builds a registry from tools in the given order. It fails on duplicate or empty
// names and on input schemas that do not compile.
func NewRegistry(tools ...reagent.Tool) (*Registry, error) {
	r := &Registry{
		tools:   make([]reagent.Tool, 0, len(tools)),
		byName:  make(map[string]reagent.Tool, len(tools)),
		schemas: make(map[string]*schema.Schema),
	}

	for _, tool := range tools {
		name := tool.Name()
		if name == "" {
			return nil, fmt.Errorf("%w: tool has an empty name", reagent.ErrMissingToolName)
		}
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("%w: %q", reagent.ErrDuplicateTool, name)
		}

		if st, ok := tool.(reagent.SchemaTool); ok {
			compiled, err := schema.Compile(st.InputSchema())
			if err != nil {
				return nil, fmt.Errorf("tool %q: %w", name, err)
			}
			if compiled != nil {
				r.schemas[name] = compiled
			}
		}

		r.tools = append(r.tools, tool)
		r.byName[name] = tool
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(tools ...reagent.Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, tool := range r.tools {
		names[i] = tool.Name()
	}
	return names
}

// Tools returns the tools in registration order.
func (r *Registry) Tools() []reagent.Tool {
	out := make([]reagent.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (reagent.Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Dispatch calls the named tool exactly once and returns its text.
//
// The only error is [reagent.ErrUnknownTool]. Input that violates the tool's schema is reported
// as "Invalid input for <tool>: <reason>" without calling the tool.
func (r *Registry) Dispatch(ctx context.Context, name string, input any) (string, error) {
	tool, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", reagent.ErrUnknownTool, name)
	}

	if s := r.schemas[name]; s != nil {
		if err := s.Validate(input); err != nil {
			return fmt.Sprintf("Invalid input for %s: %v", name, err), nil
		}
	}

	return tool.Call(ctx, input), nil
}
