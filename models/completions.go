package models

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rickchristie/reagent"
)

// Completions implements [reagent.GenerationService] on the legacy /v1/completions endpoint.
//
// Unlike chat backends the prompt is continued verbatim, which is what the ReAct transcript
// expects. Most self-hosted servers (vLLM, llama.cpp, TGI) expose this endpoint and accept
// repetition_penalty as an extra body field.
//
//	service := models.NewCompletions(
//	    openai.NewClient(option.WithBaseURL("http://localhost:8000/v1"), option.WithAPIKey("none")),
//	    "teknium/OpenHermes-2.5-Mistral-7B",
//	)
type Completions struct {
	client  openai.Client
	model   string
	options []option.RequestOption
}

// NewCompletions creates a Completions backend for model.
func NewCompletions(client openai.Client, model string) *Completions {
	return &Completions{client: client, model: model}
}

// NewCompletionsFromKey builds the openai-go client from an API key and an optional base URL.
func NewCompletionsFromKey(apiKey, baseURL, model string) *Completions {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return NewCompletions(openai.NewClient(opts...), model)
}

// WithRequestOptions adds options sent with every request.
func (c *Completions) WithRequestOptions(opts ...option.RequestOption) *Completions {
	c.options = append(c.options, opts...)
	return c
}

// Generate implements reagent.GenerationService.
func (c *Completions) Generate(ctx context.Context, req reagent.GenerationRequest) (string, error) {
	params := openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(c.model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(req.Prompt)},
		Temperature: openai.Float(req.Sampling.EffectiveTemperature()),
	}
	if n := maxNewTokens(req.Sampling); n > 0 {
		params.MaxTokens = openai.Int(int64(n))
	}

	opts := make([]option.RequestOption, 0, len(c.options)+1)
	if req.Sampling.RepetitionPenalty > 0 {
		opts = append(opts, option.WithJSONSet("repetition_penalty", req.Sampling.RepetitionPenalty))
	}
	opts = append(opts, c.options...)

	stream := c.client.Completions.NewStreaming(ctx, params, opts...)
	defer stream.Close()

	var out strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		text := chunk.Choices[0].Text
		out.WriteString(text)
		if req.Stop != nil && req.Stop.Observe(text) == reagent.StopStopped {
			return req.Prompt + out.String(), nil
		}
	}
	if err := stream.Err(); err != nil {
		return "", &reagent.GenerationError{Backend: "completions/" + c.model, Err: err}
	}
	return req.Prompt + out.String(), nil
}

// Compile-time check that Completions implements reagent.GenerationService.
var _ reagent.GenerationService = (*Completions)(nil)
