package react

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/rickchristie/reagent"
)

//go:embed react.tmpl
var reactTemplateContent string

// PromptData is the data passed to the prompt template.
type PromptData struct {
	// Tools lists the registered tools in registry order.
	Tools []ToolLine

	// ToolNames is the list of valid "action" values.
	ToolNames []string

	// Question is the user's question, rendered last.
	Question string
}

// ToolLine is one "- name: parameters" entry of the tool list.
type ToolLine struct {
	Name       string
	Parameters string
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// DefaultPromptTemplate renders the ReAct instructions: the tool list, the $JSON_BLOB rules,
// the Thought/Action/Observation format and finally the question.
//
// The template file is located at agents/react/react.tmpl. Replace it with
// [Agent.WithPromptTemplate].
var DefaultPromptTemplate = template.Must(
	template.New("react").Funcs(templateFuncs).Parse(reactTemplateContent),
)

// NewPromptTemplate parses a custom prompt template. It has access to the [PromptData] fields
// and the "join" function.
func NewPromptTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("react").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

// BuildPrompt renders the default prompt for the given tools and question.
func BuildPrompt(tools []reagent.Tool, question string) (string, error) {
	return renderPrompt(DefaultPromptTemplate, tools, question)
}

func renderPrompt(tmpl *template.Template, tools []reagent.Tool, question string) (string, error) {
	data := PromptData{
		Tools:     make([]ToolLine, len(tools)),
		ToolNames: make([]string, len(tools)),
		Question:  question,
	}
	for i, tool := range tools {
		data.Tools[i] = ToolLine{Name: tool.Name(), Parameters: tool.Parameters()}
		data.ToolNames[i] = tool.Name()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
