package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/schema"
	lctools "github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/wikipedia"
)

// DefaultUserAgent identifies the agent to public APIs such as Wikipedia.
const DefaultUserAgent = "reagent/1.0 (https://github.com/rickchristie/reagent)"

// FromLangChain adapts a langchaingo tool. The input is passed through when it is a string and
// JSON-encoded otherwise. Errors become "Error in <name>: <reason>".
//
//	search, err := serpapi.New(serpapi.WithAPIKey(key))
//	tool := tools.FromLangChain(search, "query (a web search query)")
func FromLangChain(tool lctools.Tool, parameters string) *reagent.ToolFunc {
	if parameters == "" {
		parameters = tool.Description()
	}
	return reagent.NewToolFunc(tool.Name(), parameters, "", func(ctx context.Context, input any) (string, error) {
		text, err := inputText(input)
		if err != nil {
			return "", err
		}
		return tool.Call(ctx, text)
	})
}

// NewWikipedia returns the langchaingo Wikipedia tool, adapted. Its input must be a non-empty
// search string.
func NewWikipedia(userAgent string) *reagent.ToolFunc {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return FromLangChain(wikipedia.New(userAgent), "query (a topic or person to look up on Wikipedia)").
		WithInputSchema(schema.String("search query").MinLength(1).Build())
}

func inputText(input any) (string, error) {
	switch v := input.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("cannot encode input: %w", err)
		}
		return string(data), nil
	}
}
