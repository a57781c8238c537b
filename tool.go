package reagent

import (
	"context"
	"fmt"
)

// Tool is a single capability the agent can invoke by name.
//
// Call must never panic or return an error: implementations catch their own failures and render
// them as text, which the agent shows to the model as the observation.
type Tool interface {
	// Name returns the identifier the model uses in the "action" field.
	Name() string

	// Parameters describes the expected input, e.g. "expression (a mathematical expression to
	// evaluate)". It is shown verbatim in the prompt next to the tool name.
	Parameters() string

	// Call invokes the tool with the decoded "action_input" value. The input type depends on
	// what the model produced: string, float64, bool, nil, []any or map[string]any.
	Call(ctx context.Context, input any) string
}

// SchemaTool is implemented by tools that declare a JSON Schema for their input.
// The toolchain validates the input against it before calling the tool.
type SchemaTool interface {
	Tool

	// InputSchema returns the JSON Schema for the input value, or nil for no validation.
	InputSchema() map[string]any
}

// ToolFunc adapts a fallible function into a [Tool].
type ToolFunc struct {
	name        string
	parameters  string
	errorPrefix string
	schema      map[string]any
	fn          func(ctx context.Context, input any) (string, error)
}

// NewToolFunc creates a Tool from fn. When fn returns an error the tool answers with
// "<errorPrefix>: <error>" instead.
func NewToolFunc(
	name, parameters, errorPrefix string,
	fn func(ctx context.Context, input any) (string, error),
) *ToolFunc {
	if errorPrefix == "" {
		errorPrefix = "Error in " + name
	}
	return &ToolFunc{
		name:        name,
		parameters:  parameters,
		errorPrefix: errorPrefix,
		fn:          fn,
	}
}

// WithInputSchema attaches a JSON Schema the input must satisfy.
func (t *ToolFunc) WithInputSchema(schema map[string]any) *ToolFunc {
	t.schema = schema
	return t
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Parameters returns the parameter description shown in the prompt.
func (t *ToolFunc) Parameters() string {
	return t.parameters
}

// InputSchema returns the attached JSON Schema, if any.
func (t *ToolFunc) InputSchema() map[string]any {
	return t.schema
}

// Call runs the function, converting errors and panics into text.
func (t *ToolFunc) Call(ctx context.Context, input any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%s: %v", t.errorPrefix, r)
		}
	}()

	result, err := t.fn(ctx, input)
	if err != nil {
		return fmt.Sprintf("%s: %v", t.errorPrefix, err)
	}
	return result
}

// ActionDirective is a single tool request parsed from the model's output.
type ActionDirective struct {
	// Tool is the value of the "action" field.
	Tool string

	// Input is the decoded value of the "action_input" field.
	Input any
}

// Compile-time check that ToolFunc implements SchemaTool.
var _ SchemaTool = (*ToolFunc)(nil)
