package reagent

import "strings"

// Transcript is the growing prompt of one interaction: the rendered instructions followed by
// every Thought/Action/Observation block so far.
//
// It is append-only and owned by a single run. Once a final answer has been recorded it is
// sealed and further appends fail.
type Transcript struct {
	segments []string
	text     strings.Builder
	sealed   bool
}

// NewTranscript starts a transcript with the initial prompt.
func NewTranscript(prompt string) *Transcript {
	t := &Transcript{}
	t.segments = append(t.segments, prompt)
	t.text.WriteString(prompt)
	return t
}

// Append adds a segment. It returns [ErrTranscriptSealed] after [Transcript.Seal].
func (t *Transcript) Append(segment string) error {
	if t.sealed {
		return ErrTranscriptSealed
	}
	t.segments = append(t.segments, segment)
	t.text.WriteString(segment)
	return nil
}

// Seal marks the transcript as finished.
func (t *Transcript) Seal() {
	t.sealed = true
}

// Sealed reports whether a final answer has been recorded.
func (t *Transcript) Sealed() bool {
	return t.sealed
}

// String returns the full transcript text.
func (t *Transcript) String() string {
	return t.text.String()
}

// Segments returns a copy of the appended segments, the initial prompt first.
func (t *Transcript) Segments() []string {
	out := make([]string, len(t.segments))
	copy(out, t.segments)
	return out
}

// Len returns the number of segments.
func (t *Transcript) Len() int {
	return len(t.segments)
}
