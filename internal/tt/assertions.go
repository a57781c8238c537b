package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// AssertTextEqual fails with a unified diff when two multi-line strings differ. Prompts and
// transcripts are long; testify's quoted single-line output hides where they diverge.
func AssertTextEqual(t *testing.T, expected, actual string) bool {
	t.Helper()
	if expected == actual {
		return true
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		t.Errorf("texts differ (diff failed: %v)", err)
		return false
	}
	t.Errorf("texts differ:\n%s", diff)
	return false
}
