package research

import (
	"fmt"
	"strings"

	"github.com/rickchristie/reagent/scholar"
)

// Supervisor decisions.
const (
	DecisionRefine   = "refine"
	DecisionFinalize = "finalize"
)

// State flows through every node. Each node returns an updated copy.
type State struct {
	Query          string          `yaml:"query"`
	Papers         []scholar.Paper `yaml:"papers"`
	FilteredPapers []scholar.Paper `yaml:"filtered_papers"`
	Decision       string          `yaml:"decision"`
	Feedback       string          `yaml:"feedback"`
	Summary        string          `yaml:"summary"`
}

// Finalized reports whether the supervisor accepted the papers.
func (s State) Finalized() bool {
	return s.Decision == DecisionFinalize
}

// summarize renders "Found n relevant papers:" followed by one numbered citation per line.
func summarize(papers []scholar.Paper) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d relevant papers:\n", len(papers))
	for i, p := range papers {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p.Citation())
	}
	return sb.String()
}
