// Package graph runs small state machines whose nodes transform a shared state value.
//
// A [StateGraph] is built with nodes, fixed edges and conditional edges, then compiled into an
// immutable [Graph]:
//
//	g, err := graph.NewStateGraph[State]().
//	    AddNode("search", search).
//	    AddNode("review", review).
//	    AddEdge(graph.Start, "search").
//	    AddEdge("search", "review").
//	    AddConditionalEdges("review", route, "search", graph.End).
//	    Compile()
//
//	final, err := g.Invoke(ctx, State{Query: "roman model"})
//
// Cycles are allowed. [Graph.Invoke] stops with [ErrStepLimit] once the step budget is spent.
package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Reserved node names.
const (
	Start = "__start__"
	End   = "__end__"
)

// DefaultStepLimit is the number of node executions allowed per Invoke.
const DefaultStepLimit = 25

var (
	ErrStepLimit     = errors.New("graph step limit reached")
	ErrUnknownNode   = errors.New("unknown node")
	ErrDuplicateNode = errors.New("duplicate node")
	ErrNoEntry       = errors.New("no edge from start")
	ErrAmbiguousEdge = errors.New("node already has an outgoing edge")
	ErrNoRoute       = errors.New("node has no outgoing edge")
)

// NodeFunc transforms the state.
type NodeFunc[S any] func(ctx context.Context, state S) (S, error)

// Router picks the next node after a node with conditional edges. It returns a node name or End.
type Router[S any] func(ctx context.Context, state S) (string, error)

// Edge is an outgoing connection. Conditional edges list the targets a router may choose.
type Edge struct {
	From        string
	To          string
	Conditional bool
}

// ----------------------------------------------------------------------------
// StateGraph - builder
// ----------------------------------------------------------------------------

// StateGraph collects nodes and edges. Errors are remembered and reported by Compile.
type StateGraph[S any] struct {
	nodes   map[string]NodeFunc[S]
	order   []string
	edges   map[string]string
	routers map[string]Router[S]
	targets map[string][]string
	errs    []error
}

// NewStateGraph creates an empty builder.
func NewStateGraph[S any]() *StateGraph[S] {
	return &StateGraph[S]{
		nodes:   make(map[string]NodeFunc[S]),
		edges:   make(map[string]string),
		routers: make(map[string]Router[S]),
		targets: make(map[string][]string),
	}
}

// AddNode registers fn under name.
func (b *StateGraph[S]) AddNode(name string, fn NodeFunc[S]) *StateGraph[S] {
	switch {
	case name == "" || name == Start || name == End:
		b.errs = append(b.errs, fmt.Errorf("invalid node name %q", name))
	case fn == nil:
		b.errs = append(b.errs, fmt.Errorf("node %q has a nil function", name))
	case b.nodes[name] != nil:
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateNode, name))
	default:
		b.nodes[name] = fn
		b.order = append(b.order, name)
	}
	return b
}

// AddEdge always moves from from to to.
func (b *StateGraph[S]) AddEdge(from, to string) *StateGraph[S] {
	if b.hasOutgoing(from) {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrAmbiguousEdge, from))
		return b
	}
	b.edges[from] = to
	return b
}

// AddConditionalEdges lets router choose the node after from. targets lists every name the
// router may return; it is used for validation and rendering and may be empty.
func (b *StateGraph[S]) AddConditionalEdges(from string, router Router[S], targets ...string) *StateGraph[S] {
	if b.hasOutgoing(from) {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrAmbiguousEdge, from))
		return b
	}
	if router == nil {
		b.errs = append(b.errs, fmt.Errorf("node %q has a nil router", from))
		return b
	}
	b.routers[from] = router
	b.targets[from] = append([]string(nil), targets...)
	return b
}

func (b *StateGraph[S]) hasOutgoing(from string) bool {
	_, fixed := b.edges[from]
	_, routed := b.routers[from]
	return fixed || routed
}

// Compile validates the graph: every edge must connect known nodes, the start must have an
// edge and every node must have a way out.
func (b *StateGraph[S]) Compile() (*Graph[S], error) {
	errs := append([]error(nil), b.errs...)

	known := func(name string) bool {
		return name == End || b.nodes[name] != nil
	}

	if _, ok := b.edges[Start]; !ok {
		if _, routed := b.routers[Start]; !routed {
			errs = append(errs, ErrNoEntry)
		}
	}
	for from, to := range b.edges {
		if from != Start && !known(from) {
			errs = append(errs, fmt.Errorf("%w: edge from %q", ErrUnknownNode, from))
		}
		if to == Start || !known(to) {
			errs = append(errs, fmt.Errorf("%w: edge to %q", ErrUnknownNode, to))
		}
	}
	for from, targets := range b.targets {
		if from != Start && !known(from) {
			errs = append(errs, fmt.Errorf("%w: conditional edge from %q", ErrUnknownNode, from))
		}
		for _, to := range targets {
			if !known(to) {
				errs = append(errs, fmt.Errorf("%w: conditional edge to %q", ErrUnknownNode, to))
			}
		}
	}
	for _, name := range b.order {
		if !b.hasOutgoing(name) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrNoRoute, name))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	g := &Graph[S]{
		nodes:     make(map[string]NodeFunc[S], len(b.nodes)),
		order:     append([]string(nil), b.order...),
		edges:     make(map[string]string, len(b.edges)),
		routers:   make(map[string]Router[S], len(b.routers)),
		targets:   make(map[string][]string, len(b.targets)),
		stepLimit: DefaultStepLimit,
	}
	for k, v := range b.nodes {
		g.nodes[k] = v
	}
	for k, v := range b.edges {
		g.edges[k] = v
	}
	for k, v := range b.routers {
		g.routers[k] = v
	}
	for k, v := range b.targets {
		g.targets[k] = v
	}
	return g, nil
}

// ----------------------------------------------------------------------------
// Graph - compiled
// ----------------------------------------------------------------------------

// Observer is called after every node with the node name and the state it produced.
type Observer[S any] func(ctx context.Context, node string, state S)

// Graph is a compiled StateGraph. It is safe for concurrent Invoke calls as long as the node
// functions are.
type Graph[S any] struct {
	nodes     map[string]NodeFunc[S]
	order     []string
	edges     map[string]string
	routers   map[string]Router[S]
	targets   map[string][]string
	stepLimit int
	observers []Observer[S]
}

// WithStepLimit sets the number of node executions allowed per Invoke. Zero or less restores
// the default.
func (g *Graph[S]) WithStepLimit(n int) *Graph[S] {
	if n <= 0 {
		n = DefaultStepLimit
	}
	g.stepLimit = n
	return g
}

// WithObserver registers an observer.
func (g *Graph[S]) WithObserver(o Observer[S]) *Graph[S] {
	g.observers = append(g.observers, o)
	return g
}

// Invoke runs the graph from Start until a route reaches End. The last state is returned along
// with any error, so callers can inspect how far the run got.
func (g *Graph[S]) Invoke(ctx context.Context, state S) (S, error) {
	current, err := g.next(ctx, Start, state)
	if err != nil {
		return state, err
	}

	for steps := 0; current != End; steps++ {
		if steps >= g.stepLimit {
			return state, fmt.Errorf("%w (%d) at %q", ErrStepLimit, g.stepLimit, current)
		}
		if err := ctx.Err(); err != nil {
			return state, err
		}

		fn := g.nodes[current]
		if fn == nil {
			return state, fmt.Errorf("%w: %q", ErrUnknownNode, current)
		}
		state, err = fn(ctx, state)
		if err != nil {
			return state, fmt.Errorf("node %q: %w", current, err)
		}
		for _, o := range g.observers {
			o(ctx, current, state)
		}

		current, err = g.next(ctx, current, state)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

func (g *Graph[S]) next(ctx context.Context, from string, state S) (string, error) {
	if to, ok := g.edges[from]; ok {
		return to, nil
	}
	router, ok := g.routers[from]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoRoute, from)
	}
	to, err := router(ctx, state)
	if err != nil {
		return "", fmt.Errorf("routing from %q: %w", from, err)
	}
	if to != End && g.nodes[to] == nil {
		return "", fmt.Errorf("%w: %q routed to %q", ErrUnknownNode, from, to)
	}
	return to, nil
}

// Nodes returns node names in the order they were added.
func (g *Graph[S]) Nodes() []string {
	return append([]string(nil), g.order...)
}

// Edges returns every edge, fixed ones first, each group sorted by source.
func (g *Graph[S]) Edges() []Edge {
	var out []Edge
	for _, from := range sortedKeys(g.edges, g.rank) {
		out = append(out, Edge{From: from, To: g.edges[from]})
	}
	for _, from := range sortedKeys(g.targets, g.rank) {
		for _, to := range g.targets[from] {
			out = append(out, Edge{From: from, To: to, Conditional: true})
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V, rank func(string) int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return rank(keys[i]) < rank(keys[j]) })
	return keys
}

// rank orders Start first, then nodes in insertion order.
func (g *Graph[S]) rank(name string) int {
	if name == Start {
		return -1
	}
	for i, n := range g.order {
		if n == name {
			return i
		}
	}
	return len(g.order)
}

// Mermaid renders the graph as a Mermaid flowchart. Conditional edges are dotted.
func (g *Graph[S]) Mermaid() string {
	var sb strings.Builder
	sb.WriteString("flowchart TD\n")
	fmt.Fprintf(&sb, "\t%s([%s])\n", Start, Start)
	for _, name := range g.order {
		fmt.Fprintf(&sb, "\t%s[%s]\n", name, name)
	}
	fmt.Fprintf(&sb, "\t%s([%s])\n", End, End)
	for _, e := range g.Edges() {
		arrow := "-->"
		if e.Conditional {
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "\t%s %s %s\n", e.From, arrow, e.To)
	}
	return sb.String()
}
