package react

import (
	"strings"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	calc := reagent.NewToolFunc("Calculator", "expression (a mathematical expression to evaluate)", "", nil)
	wiki := reagent.NewToolFunc("Wikipedia", "query (a search term)", "", nil)

	prompt, err := BuildPrompt([]reagent.Tool{calc, wiki}, "What is 2+2?")
	require.NoError(t, err)

	tt.AssertTextEqual(t, tt.JoinLines(
		"Answer the following questions as best you can. You have access to the following tools:",
		"",
		"- Calculator: expression (a mathematical expression to evaluate)",
		"- Wikipedia: query (a search term)",
		"",
		"The way you use the tools is by specifying a json blob.",
	), strings.Join(strings.Split(prompt, "\n")[:6], "\n"))

	assert.Contains(t, prompt, `The only values that should be in the "action" field are: Calculator, Wikipedia`)
	assert.Contains(t, prompt, "{\n  \"action\": $TOOL_NAME,\n  \"action_input\": $INPUT\n}")
	assert.Contains(t, prompt, "Thought: I now know the final answer\nFinal Answer: the final answer to the original input question")
	assert.True(t, strings.HasSuffix(prompt, "\nQuestion: What is 2+2?"))
}

func TestBuildPrompt_IsPure(t *testing.T) {
	calc := reagent.NewToolFunc("Calculator", "expression", "", nil)

	first, err := BuildPrompt([]reagent.Tool{calc}, "q")
	require.NoError(t, err)
	second, err := BuildPrompt([]reagent.Tool{calc}, "q")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewPromptTemplate(t *testing.T) {
	tmpl, err := NewPromptTemplate(`{{range .Tools}}{{.Name}};{{end}} {{join .ToolNames "|"}} Q={{.Question}}`)
	require.NoError(t, err)

	out, err := renderPrompt(tmpl, []reagent.Tool{
		reagent.NewToolFunc("A", "", "", nil),
		reagent.NewToolFunc("B", "", "", nil),
	}, "why?")
	require.NoError(t, err)
	assert.Equal(t, "A;B; A|B Q=why?", out)

	_, err = NewPromptTemplate("{{.Broken")
	assert.Error(t, err)
}
