package research

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rickchristie/reagent/graph"
	"github.com/rickchristie/reagent/scholar"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// Node names.
const (
	SearchAgent          = "SearchAgent"
	FilterAgent          = "FilterAgent"
	SupervisorAgent      = "SupervisorAgent"
	QueryRefinementAgent = "QueryRefinementAgent"
)

const (
	// DefaultQuery is the query used when a run starts without one.
	DefaultQuery = "service composition roman model"

	// FallbackSearchQuery is searched when the state reaches SearchAgent with an empty query.
	FallbackSearchQuery = "applications of AI in education"

	// DefaultFeedback is sent to the refinement agent when the supervisor left none.
	DefaultFeedback = "No relevant papers found."

	// DefaultPaperLimit caps the papers taken from one search.
	DefaultPaperLimit = 5
)

var (
	ErrUnexpectedDecision = errors.New("unexpected supervisor decision")
	ErrEmptyResponse      = errors.New("model returned no choices")
)

// PaperSearcher finds papers for a query. [scholar.Client] implements it.
type PaperSearcher interface {
	Search(ctx context.Context, query string) ([]scholar.Paper, error)
}

var (
	relevancePrompt = prompts.NewChatPromptTemplate([]prompts.MessageFormatter{
		prompts.NewSystemMessagePromptTemplate("You are a helpful academic assistant.", nil),
		prompts.NewHumanMessagePromptTemplate(
			"Is this paper titled '{{.title}}' relevant to the query '{{.query}}'?. "+
				"Here is the abstract:\n{{.abstract}}.\n Reply with 'Yes' or 'No'.",
			[]string{"title", "query", "abstract"},
		),
	})

	refinePrompt = prompts.NewChatPromptTemplate([]prompts.MessageFormatter{
		prompts.NewSystemMessagePromptTemplate("You are a helpful research assistant.", nil),
		prompts.NewHumanMessagePromptTemplate(
			"Refine this query: '{{.query}}' to improve search results. Feedback: {{.feedback}}",
			[]string{"query", "feedback"},
		),
	})
)

// Agents holds the dependencies of the four nodes.
type Agents struct {
	searcher PaperSearcher
	model    llms.Model
	limit    int
	logger   *slog.Logger
}

// NewAgents creates the agents. model answers the relevance and refinement prompts and is
// called at temperature 0.
func NewAgents(searcher PaperSearcher, model llms.Model) *Agents {
	return &Agents{
		searcher: searcher,
		model:    model,
		limit:    DefaultPaperLimit,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithPaperLimit caps the papers taken from one search. Zero or less restores the default.
func (a *Agents) WithPaperLimit(n int) *Agents {
	if n <= 0 {
		n = DefaultPaperLimit
	}
	a.limit = n
	return a
}

// WithLogger sets the logger for per-node progress.
func (a *Agents) WithLogger(logger *slog.Logger) *Agents {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Search fetches up to the paper limit for the current query.
func (a *Agents) Search(ctx context.Context, s State) (State, error) {
	query := s.Query
	if strings.TrimSpace(query) == "" {
		query = FallbackSearchQuery
	}

	papers, err := a.searcher.Search(ctx, query)
	if err != nil {
		return s, fmt.Errorf("search %q: %w", query, err)
	}
	if len(papers) > a.limit {
		papers = papers[:a.limit]
	}

	a.logger.InfoContext(ctx, "papers found", "query", query, "count", len(papers))
	s.Papers = papers
	return s, nil
}

// Filter asks the model whether each paper is relevant and keeps those it says "Yes" to.
func (a *Agents) Filter(ctx context.Context, s State) (State, error) {
	filtered := make([]scholar.Paper, 0, len(s.Papers))
	for _, p := range s.Papers {
		reply, err := a.chat(ctx, relevancePrompt, map[string]any{
			"title":    p.Title,
			"query":    s.Query,
			"abstract": p.Abstract,
		})
		if err != nil {
			return s, fmt.Errorf("judge %q: %w", p.Title, err)
		}
		relevant := strings.Contains(reply, "Yes")
		a.logger.DebugContext(ctx, "relevance", "title", p.Title, "relevant", relevant)
		if relevant {
			filtered = append(filtered, p)
		}
	}

	a.logger.InfoContext(ctx, "papers filtered", "kept", len(filtered), "of", len(s.Papers))
	s.FilteredPapers = filtered
	return s, nil
}

// Supervise finalizes with a summary when more than one paper is relevant and asks for a
// refined query otherwise.
func (a *Agents) Supervise(ctx context.Context, s State) (State, error) {
	n := len(s.FilteredPapers)
	if n <= 1 {
		s.Decision = DecisionRefine
		s.Feedback = fmt.Sprintf("Only %d relevant paper(s) found. Refining the query.", n)
	} else {
		s.Decision = DecisionFinalize
		s.Summary = summarize(s.FilteredPapers)
	}
	a.logger.InfoContext(ctx, "supervisor decision", "decision", s.Decision, "relevant", n)
	return s, nil
}

// Refine asks the model for a better query.
func (a *Agents) Refine(ctx context.Context, s State) (State, error) {
	feedback := s.Feedback
	if feedback == "" {
		feedback = DefaultFeedback
	}

	reply, err := a.chat(ctx, refinePrompt, map[string]any{
		"query":    s.Query,
		"feedback": feedback,
	})
	if err != nil {
		return s, fmt.Errorf("refine %q: %w", s.Query, err)
	}

	refined := strings.TrimSpace(reply)
	a.logger.InfoContext(ctx, "query refined", "from", s.Query, "to", refined)
	s.Query = refined
	return s, nil
}

// Route sends a refine decision to QueryRefinementAgent and a finalize decision to the end.
func Route(_ context.Context, s State) (string, error) {
	switch s.Decision {
	case DecisionRefine:
		return QueryRefinementAgent, nil
	case DecisionFinalize:
		return graph.End, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnexpectedDecision, s.Decision)
	}
}

func (a *Agents) chat(ctx context.Context, tmpl prompts.ChatPromptTemplate, values map[string]any) (string, error) {
	messages, err := tmpl.FormatMessages(values)
	if err != nil {
		return "", fmt.Errorf("format prompt: %w", err)
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(m.GetType(), m.GetContent()))
	}

	resp, err := a.model.GenerateContent(ctx, content, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}
