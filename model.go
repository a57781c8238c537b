package reagent

import "context"

// GenerationService is the text-completion backend the agent drives.
//
// Implementations continue Prompt, feeding every incremental piece of output into Stop, and
// return as soon as Stop reports [StopStopped] or MaxNewTokens are produced, whichever comes
// first. The returned text is the full decoded text: the prompt followed by the continuation.
//
// Generate is blocking and is called once per agent iteration. It must not retry; any error is
// returned to the caller and ends the current question.
type GenerationService interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// GenerationRequest is a single generation call.
type GenerationRequest struct {
	// Prompt is the complete text to continue.
	Prompt string

	// Sampling controls decoding.
	Sampling SamplingConfig

	// Stop is consulted after every chunk. May be nil, in which case only MaxNewTokens bounds
	// the call.
	Stop *StopMonitor
}

// SamplingConfig holds decoding parameters.
type SamplingConfig struct {
	Temperature       float64 `yaml:"temperature"`
	RepetitionPenalty float64 `yaml:"repetition_penalty"`
	DoSample          bool    `yaml:"do_sample"`
	MaxNewTokens      int     `yaml:"max_new_tokens"`

	// PadWithEOS asks backends that need an explicit padding token to pad with end-of-sequence.
	PadWithEOS bool `yaml:"pad_with_eos"`
}

// DefaultSampling returns the decoding parameters the agent uses unless overridden.
func DefaultSampling() SamplingConfig {
	return SamplingConfig{
		Temperature:       0.8,
		RepetitionPenalty: 1.1,
		DoSample:          true,
		MaxNewTokens:      750,
		PadWithEOS:        true,
	}
}

// EffectiveTemperature returns the temperature to send to backends, which is zero (greedy) when
// sampling is disabled.
func (c SamplingConfig) EffectiveTemperature() float64 {
	if !c.DoSample {
		return 0
	}
	return c.Temperature
}
