package models

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionServer streams chunks as server-sent events and records the request body.
func completionServer(t *testing.T, chunks []string, body *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/completions", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, body)

		w.Header().Set("Content-Type", "text/event-stream")
		for i, c := range chunks {
			event, _ := json.Marshal(map[string]any{
				"id":      fmt.Sprintf("cmpl-%d", i),
				"object":  "text_completion",
				"created": 1,
				"model":   "test",
				"choices": []map[string]any{{"index": 0, "text": c, "finish_reason": nil}},
			})
			fmt.Fprintf(w, "data: %s\n\n", event)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestCompletions_Generate(t *testing.T) {
	var body map[string]any
	srv := completionServer(t, []string{"Thought: add\n", "Observation:", " 5", "\nFinal Answer: 5"}, &body)
	defer srv.Close()

	monitor := reagent.NewStopMonitor("")
	full, err := NewCompletionsFromKey("test", srv.URL, "mistral-7b").
		Generate(context.Background(), reagent.GenerationRequest{
			Prompt:   "PROMPT\n",
			Sampling: reagent.DefaultSampling(),
			Stop:     monitor,
		})

	require.NoError(t, err)
	assert.Equal(t, "PROMPT\nThought: add\nObservation:", full)
	assert.True(t, monitor.Stopped())

	assert.Equal(t, "mistral-7b", body["model"])
	assert.Equal(t, "PROMPT\n", body["prompt"])
	assert.Equal(t, 750.0, body["max_tokens"])
	assert.Equal(t, 0.8, body["temperature"])
	assert.Equal(t, 1.1, body["repetition_penalty"])
	assert.Equal(t, true, body["stream"])
}

func TestCompletions_GenerateWithoutMarker(t *testing.T) {
	var body map[string]any
	srv := completionServer(t, []string{"Final ", "Answer: ", "4"}, &body)
	defer srv.Close()

	full, err := NewCompletionsFromKey("test", srv.URL, "m").
		Generate(context.Background(), reagent.GenerationRequest{
			Prompt: "Q\n",
			Stop:   reagent.NewStopMonitor(""),
		})

	require.NoError(t, err)
	assert.Equal(t, "Q\nFinal Answer: 4", full)
}

func TestCompletions_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"message": "model not found", "type": "invalid_request_error"}}`)
	}))
	defer srv.Close()

	_, err := NewCompletionsFromKey("test", srv.URL, "missing").
		Generate(context.Background(), reagent.GenerationRequest{Prompt: "p"})

	var genErr *reagent.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "completions/missing", genErr.Backend)
}
