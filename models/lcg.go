package models

import (
	"context"
	"errors"
	"strings"

	"github.com/rickchristie/reagent"
	"github.com/tmc/langchaingo/llms"
)

// LangChain wraps an llms.Model and implements [reagent.GenerationService].
//
// The prompt is sent as a single human message. Output is streamed through llms.WithStreamingFunc;
// once the stop monitor trips the callback aborts the request and the text received so far is
// used as the completion.
//
//	llm, _ := openai.New(openai.WithToken(apiKey), openai.WithModel("gpt-4o-mini"))
//	service := models.NewLangChain(llm).WithModelName("gpt-4o-mini")
type LangChain struct {
	model       llms.Model
	modelName   string
	callOptions []llms.CallOption
}

// NewLangChain wraps model.
func NewLangChain(model llms.Model) *LangChain {
	return &LangChain{model: model}
}

// WithModelName sets the model name reported in errors.
func (m *LangChain) WithModelName(name string) *LangChain {
	m.modelName = name
	return m
}

// WithCallOptions adds options sent with every call. They are applied after the sampling
// options, so they override them.
func (m *LangChain) WithCallOptions(opts ...llms.CallOption) *LangChain {
	m.callOptions = append(m.callOptions, opts...)
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LangChain) Unwrap() llms.Model {
	return m.model
}

// Generate implements reagent.GenerationService.
func (m *LangChain) Generate(ctx context.Context, req reagent.GenerationRequest) (string, error) {
	var streamed strings.Builder
	stopped := false

	streaming := llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		if stopped {
			return reagent.ErrGenerationStopped
		}
		streamed.Write(chunk)
		if req.Stop != nil && req.Stop.Observe(string(chunk)) == reagent.StopStopped {
			stopped = true
			return reagent.ErrGenerationStopped
		}
		return nil
	})

	opts := make([]llms.CallOption, 0, len(m.callOptions)+4)
	opts = append(opts, llms.WithTemperature(req.Sampling.EffectiveTemperature()))
	if n := maxNewTokens(req.Sampling); n > 0 {
		opts = append(opts, llms.WithMaxTokens(n))
	}
	if req.Sampling.RepetitionPenalty > 0 {
		opts = append(opts, llms.WithRepetitionPenalty(req.Sampling.RepetitionPenalty))
	}
	opts = append(opts, m.callOptions...)
	opts = append(opts, streaming)

	completion, err := llms.GenerateFromSinglePrompt(ctx, m.model, req.Prompt, opts...)
	switch {
	case stopped || errors.Is(err, reagent.ErrGenerationStopped):
		return req.Prompt + streamed.String(), nil
	case err != nil:
		return "", &reagent.GenerationError{Backend: m.backendName(), Err: err}
	case streamed.Len() > 0:
		return req.Prompt + streamed.String(), nil
	default:
		// The provider ignored the streaming callback.
		return req.Prompt + settle(req.Stop, completion), nil
	}
}

func (m *LangChain) backendName() string {
	if m.modelName == "" {
		return "langchain"
	}
	return "langchain/" + m.modelName
}

// Compile-time check that LangChain implements reagent.GenerationService.
var _ reagent.GenerationService = (*LangChain)(nil)
