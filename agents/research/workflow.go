package research

import (
	"context"
	"log/slog"

	"github.com/rickchristie/reagent/graph"
)

// NewGraph wires the agents into the research workflow.
func NewGraph(a *Agents) (*graph.Graph[State], error) {
	g, err := graph.NewStateGraph[State]().
		AddNode(SearchAgent, a.Search).
		AddNode(FilterAgent, a.Filter).
		AddNode(SupervisorAgent, a.Supervise).
		AddNode(QueryRefinementAgent, a.Refine).
		AddEdge(graph.Start, SearchAgent).
		AddEdge(SearchAgent, FilterAgent).
		AddEdge(FilterAgent, SupervisorAgent).
		AddConditionalEdges(SupervisorAgent, Route, QueryRefinementAgent, graph.End).
		AddEdge(QueryRefinementAgent, SearchAgent).
		Compile()
	if err != nil {
		return nil, err
	}

	return g.WithObserver(func(ctx context.Context, node string, s State) {
		a.logger.DebugContext(ctx, "node done", "node", node, "query", s.Query, "decision", s.Decision)
	}), nil
}

// Run searches for query, or DefaultQuery when empty, within stepLimit node executions (zero
// keeps the graph default). The state reached so far is returned with any error.
func Run(ctx context.Context, a *Agents, query string, stepLimit int) (State, error) {
	if query == "" {
		query = DefaultQuery
	}
	g, err := NewGraph(a)
	if err != nil {
		return State{Query: query}, err
	}
	a.logger.InfoContext(ctx, "research started", slog.String("query", query))
	return g.WithStepLimit(stepLimit).Invoke(ctx, State{Query: query})
}
