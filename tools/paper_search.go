package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/schema"
	"github.com/rickchristie/reagent/scholar"
)

// PaperSearchName is the tool name shown to the model.
const PaperSearchName = "PaperSearch"

// PaperSearcher finds papers for a free-text query. [scholar.Client] implements it.
type PaperSearcher interface {
	Search(ctx context.Context, query string) ([]scholar.Paper, error)
}

// NewPaperSearch returns a tool that lists papers matching the query, one citation per line.
func NewPaperSearch(searcher PaperSearcher) *reagent.ToolFunc {
	return reagent.NewToolFunc(
		PaperSearchName,
		"query (keywords describing the papers to find)",
		"Error in paper search",
		func(ctx context.Context, input any) (string, error) {
			query, err := inputText(input)
			if err != nil {
				return "", err
			}
			papers, err := searcher.Search(ctx, query)
			if err != nil {
				return "", err
			}
			return formatPapers(papers), nil
		},
	).WithInputSchema(schema.String("search query").MinLength(1).Build())
}

func formatPapers(papers []scholar.Paper) string {
	if len(papers) == 0 {
		return "No papers found."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d papers:", len(papers))
	for i, p := range papers {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, p.Citation())
	}
	return sb.String()
}

var _ PaperSearcher = (*scholar.Client)(nil)
