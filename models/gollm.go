package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rickchristie/reagent"
	"github.com/teilomillet/gollm"
)

// ErrMissingProvider is returned by NewGollm without a provider name.
var ErrMissingProvider = errors.New("gollm provider is required")

// Gollm implements [reagent.GenerationService] on top of a gollm.LLM, which reaches OpenAI,
// Anthropic, Groq, Mistral, Ollama and others through one client.
//
// Providers that cannot stream get one Generate call whose text is cut after the first marker.
type Gollm struct {
	llm      gollm.LLM
	provider string
	model    string
}

// NewGollm creates a gollm client for provider and model. Retries are disabled.
func NewGollm(provider, model, apiKey string, sampling reagent.SamplingConfig) (*Gollm, error) {
	if provider == "" {
		return nil, ErrMissingProvider
	}

	opts := []gollm.ConfigOption{
		gollm.SetProvider(provider),
		gollm.SetModel(model),
		gollm.SetTemperature(sampling.EffectiveTemperature()),
		gollm.SetMaxRetries(0),
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if n := maxNewTokens(sampling); n > 0 {
		opts = append(opts, gollm.SetMaxTokens(n))
	}
	if apiKey != "" {
		opts = append(opts, gollm.SetAPIKey(apiKey))
	}

	llm, err := gollm.NewLLM(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gollm client: %w", err)
	}
	return NewGollmFromLLM(provider, model, llm), nil
}

// NewGollmFromLLM wraps an existing gollm.LLM.
func NewGollmFromLLM(provider, model string, llm gollm.LLM) *Gollm {
	return &Gollm{llm: llm, provider: provider, model: model}
}

// Generate implements reagent.GenerationService.
func (g *Gollm) Generate(ctx context.Context, req reagent.GenerationRequest) (string, error) {
	g.llm.SetOption("temperature", req.Sampling.EffectiveTemperature())
	if n := maxNewTokens(req.Sampling); n > 0 {
		g.llm.SetOption("max_tokens", n)
	}
	prompt := gollm.NewPrompt(req.Prompt)

	if !g.llm.SupportsStreaming() {
		text, err := g.llm.Generate(ctx, prompt)
		if err != nil {
			return "", g.wrap(err)
		}
		return req.Prompt + settle(req.Stop, text), nil
	}

	stream, err := g.llm.Stream(ctx, prompt)
	if err != nil {
		return "", g.wrap(err)
	}
	defer stream.Close()

	var out strings.Builder
	for {
		token, err := stream.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", g.wrap(err)
		}
		if token == nil {
			continue
		}
		out.WriteString(token.Text)
		if req.Stop != nil && req.Stop.Observe(token.Text) == reagent.StopStopped {
			break
		}
	}
	return req.Prompt + out.String(), nil
}

func (g *Gollm) wrap(err error) error {
	return &reagent.GenerationError{Backend: "gollm/" + g.provider, Err: err}
}

// Compile-time check that Gollm implements reagent.GenerationService.
var _ reagent.GenerationService = (*Gollm)(nil)
