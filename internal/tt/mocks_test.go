package tt

import (
	"context"
	"errors"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"Thought: ", "add\n", "Action:"}, Tokenize("Thought: add\nAction:"))
	assert.Nil(t, Tokenize(""))
}

func TestScriptedService_StopsAtMarker(t *testing.T) {
	svc := NewScriptedService().AddResponse("Thought: add\nObservation: invented\nFinal Answer: 5")
	monitor := reagent.NewStopMonitor("")

	full, err := svc.Generate(context.Background(), reagent.GenerationRequest{
		Prompt:   "P Observation: in prompt\n",
		Sampling: reagent.DefaultSampling(),
		Stop:     monitor,
	})

	require.NoError(t, err)
	assert.Equal(t, "P Observation: in prompt\nThought: add\nObservation: ", full)
	assert.True(t, monitor.Stopped())
}

func TestScriptedService_ErrorsAndExhaustion(t *testing.T) {
	boom := errors.New("boom")
	svc := NewScriptedService().AddError(boom)

	_, err := svc.Generate(context.Background(), reagent.GenerationRequest{Prompt: "p"})
	assert.ErrorIs(t, err, boom)

	_, err = svc.Generate(context.Background(), reagent.GenerationRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrNoScriptedResponse)
	assert.Equal(t, 2, svc.CallCount())
	assert.Equal(t, []string{"p", "p"}, svc.Prompts())
}

func TestScriptedService_MaxNewTokens(t *testing.T) {
	svc := NewScriptedService().AddResponse("one two three four")

	full, err := svc.Generate(context.Background(), reagent.GenerationRequest{
		Prompt:   ">",
		Sampling: reagent.SamplingConfig{MaxNewTokens: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, ">one two ", full)
}
