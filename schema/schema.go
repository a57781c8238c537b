// Package schema builds and validates the JSON Schemas tools use to describe their input.
//
// A tool that implements [reagent.SchemaTool] gets its "action_input" checked before the call:
//
//	calc := reagent.NewToolFunc("Calculator", "expression (a math expression)", "Error in calculation", eval).
//	    WithInputSchema(schema.String("expression").MinLength(1).Build())
//
// Validation failures never reach the tool. The toolchain turns them into observation text so the
// model can correct itself on the next step.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a raw schema map paired with its compiled validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the map the schema was compiled from.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate checks a decoded JSON value against the schema. A nil schema accepts anything.
//
// The value must come from encoding/json: string, float64, bool, nil, []any or map[string]any.
func (s *Schema) Validate(value any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(value); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map. A nil map compiles to a nil Schema.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("input.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := c.Compile("input.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Builders
// -----------------------------------------------------------------------------

// Object creates an object schema. Names passed in required must be present.
//
//	schema.Object(map[string]*schema.Property{
//	    "query": schema.String("search terms"),
//	    "limit": schema.Integer("max results").Min(1).Max(10),
//	}, "query")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.Build()
	}

	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// Property is a single typed value in a schema.
type Property struct {
	typ         string
	description string
	minimum     *float64
	maximum     *float64
	minLength   *int
}

// Build returns the property as a raw schema map, usable on its own as a tool input schema.
func (p *Property) Build() map[string]any {
	m := map[string]any{"type": p.typ}
	if p.description != "" {
		m["description"] = p.description
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Min sets the inclusive lower bound of a numeric property.
func (p *Property) Min(v float64) *Property {
	p.minimum = &v
	return p
}

// Max sets the inclusive upper bound of a numeric property.
func (p *Property) Max(v float64) *Property {
	p.maximum = &v
	return p
}

// MinLength sets the minimum length of a string property.
func (p *Property) MinLength(n int) *Property {
	p.minLength = &n
	return p
}
