package termination

import (
	"strings"

	"github.com/rickchristie/reagent"
)

// FinalAnswerPrefix starts the line that carries the answer.
const FinalAnswerPrefix = "Final Answer:"

// FallbackLine is appended to the transcript when an interaction is abandoned after the model
// named an unknown tool.
const FallbackLine = "\n" + FinalAnswerPrefix + " " + reagent.FallbackAnswer

// FinalAnswer returns the trimmed text after "Final Answer:" on the last line that starts with it.
// A last answer line with nothing after the marker counts as no answer.
func FinalAnswer(content string) (string, bool) {
	var answer string
	found := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, FinalAnswerPrefix) {
			answer = strings.TrimSpace(line[len(FinalAnswerPrefix):])
			found = true
		}
	}
	if !found || answer == "" {
		return "", false
	}
	return answer, true
}

// NewContent removes every copy of prompt from a backend's full output and trims the result.
func NewContent(fullText, prompt string) string {
	if prompt != "" {
		fullText = strings.ReplaceAll(fullText, prompt, "")
	}
	return strings.TrimSpace(fullText)
}
