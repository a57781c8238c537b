package reagent

import "strings"

// DefaultStopMarker is the marker that ends a generation step: the model is about to invent an
// observation instead of waiting for the tool.
const DefaultStopMarker = "Observation:"

// StopState is the state of a [StopMonitor].
type StopState int

const (
	// StopRunning means generation may continue.
	StopRunning StopState = iota

	// StopStopped means the marker appeared in newly generated text. Terminal.
	StopStopped
)

func (s StopState) String() string {
	switch s {
	case StopRunning:
		return "running"
	case StopStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopMonitor decides when a generation step should halt.
//
// It only looks at text produced during the current call. The prompt itself usually contains the
// marker (the format instructions mention "Observation:"), so occurrences in the prompt must never
// trip the monitor.
//
// A StopMonitor belongs to exactly one generation call and is not safe for concurrent use.
//
//	monitor := reagent.NewStopMonitor(reagent.DefaultStopMarker)
//	monitor.Update(prompt)                 // baseline, contributes no new content
//	monitor.Update(prompt + "Thought: ")   // running
//	monitor.Update(prompt + "Thought: x\nObservation:") // stopped
type StopMonitor struct {
	marker     string
	last       string
	seenFirst  bool
	newContent strings.Builder
	state      StopState
}

// NewStopMonitor creates a monitor for the given marker. An empty marker uses
// [DefaultStopMarker].
func NewStopMonitor(marker string) *StopMonitor {
	if marker == "" {
		marker = DefaultStopMarker
	}
	return &StopMonitor{marker: marker}
}

// Marker returns the marker this monitor watches for.
func (m *StopMonitor) Marker() string {
	return m.marker
}

// Update receives the full text decoded so far (prompt included) and returns the new state.
//
// The first call only records the baseline. Every later call appends the difference between
// fullText and the previously seen full text to the new-content buffer.
func (m *StopMonitor) Update(fullText string) StopState {
	if m.state == StopStopped {
		return m.state
	}
	if !m.seenFirst {
		m.seenFirst = true
		m.last = fullText
		return m.state
	}

	m.newContent.WriteString(delta(m.last, fullText))
	m.last = fullText
	return m.check()
}

// Observe appends an already-computed chunk of new text. Backends that stream deltas use this
// instead of re-sending the full text.
func (m *StopMonitor) Observe(chunk string) StopState {
	if m.state == StopStopped {
		return m.state
	}
	m.seenFirst = true
	m.last += chunk
	m.newContent.WriteString(chunk)
	return m.check()
}

// State returns the current state.
func (m *StopMonitor) State() StopState {
	return m.state
}

// Stopped reports whether the marker has been seen.
func (m *StopMonitor) Stopped() bool {
	return m.state == StopStopped
}

// NewContent returns everything generated since the baseline.
func (m *StopMonitor) NewContent() string {
	return m.newContent.String()
}

func (m *StopMonitor) check() StopState {
	if strings.Contains(m.newContent.String(), m.marker) {
		m.state = StopStopped
	}
	return m.state
}

// delta returns the part of current that was not in previous. Decoders may re-render earlier
// text slightly differently, so when current does not extend previous the first occurrence of
// previous is removed instead.
func delta(previous, current string) string {
	if strings.HasPrefix(current, previous) {
		return current[len(previous):]
	}
	return strings.Replace(current, previous, "", 1)
}
