// Package research runs a small team of agents that search for papers, keep the relevant ones
// and refine the query until enough relevant papers are found.
//
// The agents are nodes of a [graph.Graph]:
//
//	__start__ --> SearchAgent --> FilterAgent --> SupervisorAgent
//	SupervisorAgent -.-> QueryRefinementAgent --> SearchAgent
//	SupervisorAgent -.-> __end__
//
// The supervisor finalizes with a numbered summary once at least two papers are relevant;
// otherwise it asks for a refined query. The graph's step limit bounds the number of rounds.
package research
