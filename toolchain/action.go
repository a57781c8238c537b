package toolchain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rickchristie/reagent"
)

// ActionPrefix starts a line that requests a tool call.
const ActionPrefix = "Action:"

// actionBlob matches "Action:", an optional opening fence, the smallest {...} object and an
// optional closing fence. (?s) lets the object span lines.
var actionBlob = regexp.MustCompile("(?s)Action:\\s*(?:```)?\\s*(\\{.*?\\})\\s*(?:```)?")

// HasActionLine reports whether any line of content starts with "Action:".
func HasActionLine(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, ActionPrefix) {
			return true
		}
	}
	return false
}

// ExtractActionBlob returns the first candidate JSON object following "Action:" anywhere in
// content. The search spans lines.
func ExtractActionBlob(content string) (string, bool) {
	m := actionBlob.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

type actionPayload struct {
	Action      *string `json:"action"`
	ActionInput any     `json:"action_input"`
}

// ParseAction decodes blob as a single JSON object with an "action" string and an "action_input"
// of any type. Trailing data and non-object values are rejected. Every error wraps
// [reagent.ErrMalformedAction].
func ParseAction(blob string) (*reagent.ActionDirective, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(blob)))

	var payload actionPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", reagent.ErrMalformedAction, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", reagent.ErrMalformedAction)
	}
	if payload.Action == nil {
		return nil, fmt.Errorf("%w: %w", reagent.ErrMalformedAction, reagent.ErrMissingToolName)
	}

	return &reagent.ActionDirective{
		Tool:  *payload.Action,
		Input: payload.ActionInput,
	}, nil
}

// ParseContent runs both stages on new content. It returns [reagent.ErrNoAction] when there is
// no "Action:" line or no object after it.
func ParseContent(content string) (*reagent.ActionDirective, error) {
	if !HasActionLine(content) {
		return nil, reagent.ErrNoAction
	}
	blob, ok := ExtractActionBlob(content)
	if !ok {
		return nil, reagent.ErrNoAction
	}
	return ParseAction(blob)
}
