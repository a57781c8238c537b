package reagent

import (
	"errors"
	"fmt"
)

// FallbackAnswer is returned when the model's output cannot be turned into an answer or a valid
// tool call.
const FallbackAnswer = "I am unable to answer the question."

var (
	ErrUnknownTool       = errors.New("unknown tool")
	ErrDuplicateTool     = errors.New("duplicate tool name")
	ErrNoAction          = errors.New("no valid action JSON found in response")
	ErrMalformedAction   = errors.New("malformed action JSON")
	ErrMissingToolName   = errors.New("action JSON missing 'action' field")
	ErrMaxIterations     = errors.New("maximum number of iterations reached")
	ErrTranscriptSealed  = errors.New("transcript already holds a final answer")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrNilGenerationSvc  = errors.New("generation service is nil")
	ErrGenerationStopped = errors.New("generation stopped by marker")
)

// GenerationError wraps a failure of the generation backend.
type GenerationError struct {
	Backend string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Backend, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
