package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/grafana/sobek"
	"github.com/rickchristie/reagent"
)

// CalculatorName is the name the model uses to call the calculator.
const CalculatorName = "Calculator"

// DefaultCalculatorTimeout bounds a single evaluation.
const DefaultCalculatorTimeout = time.Second

var (
	errDivisionByZero = errors.New("division by zero")
	errNotANumber     = errors.New("result is not a number")
	errNoValue        = errors.New("expression has no value")
	errNotExpression  = errors.New("input must be an expression string")
)

// Calculator evaluates expressions such as "2+2", "(3*4)/2" or "2**10" with sobek. Every call
// gets a fresh runtime, so nothing leaks between calls, and runaway scripts are interrupted.
type Calculator struct {
	timeout time.Duration
}

// NewCalculator creates a tool answering "The result is <value>." or
// "Error in calculation: <reason>".
func NewCalculator() *reagent.ToolFunc {
	return NewCalculatorWithTimeout(DefaultCalculatorTimeout)
}

// NewCalculatorWithTimeout is like NewCalculator with a custom evaluation timeout.
func NewCalculatorWithTimeout(timeout time.Duration) *reagent.ToolFunc {
	c := &Calculator{timeout: timeout}
	return reagent.NewToolFunc(
		CalculatorName,
		"expression (a mathematical expression to evaluate)",
		"Error in calculation",
		c.call,
	)
}

func (c *Calculator) call(ctx context.Context, input any) (string, error) {
	expr, err := expression(input)
	if err != nil {
		return "", err
	}
	result, err := c.Evaluate(ctx, expr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The result is %s.", result), nil
}

// Evaluate runs expr and formats the value.
func (c *Calculator) Evaluate(ctx context.Context, expr string) (string, error) {
	vm := sobek.New()

	timeout := c.timeout
	if timeout <= 0 {
		timeout = DefaultCalculatorTimeout
	}
	timer := time.AfterFunc(timeout, func() { vm.Interrupt("evaluation timed out") })
	defer timer.Stop()

	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	value, err := vm.RunString(expr)
	if err != nil {
		var interrupted *sobek.InterruptedError
		if errors.As(err, &interrupted) {
			return "", fmt.Errorf("%v", interrupted.Value())
		}
		return "", err
	}
	if value == nil || sobek.IsUndefined(value) || sobek.IsNull(value) {
		return "", errNoValue
	}

	return formatValue(value.Export())
}

func expression(input any) (string, error) {
	switch v := input.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", errNotExpression
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case map[string]any:
		if s, ok := v["expression"].(string); ok {
			return expression(s)
		}
	}
	return "", errNotExpression
}

func formatValue(v any) (string, error) {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		switch {
		case math.IsInf(n, 0):
			return "", errDivisionByZero
		case math.IsNaN(n):
			return "", errNotANumber
		case math.Abs(n) < 1e21:
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		default:
			return strconv.FormatFloat(n, 'g', -1, 64), nil
		}
	case bool:
		return strconv.FormatBool(n), nil
	case string:
		return n, nil
	default:
		return "", errNotANumber
	}
}
