// Package reagent provides the building blocks of a text-format ReAct agent: a tool registry
// contract, a streaming stop monitor, a generation service interface and hook events.
//
// The agent itself lives in agents/react. It renders a fixed instruction prompt, asks a
// [GenerationService] to continue it until the model writes "Observation:", parses either a
// "Final Answer:" line or a single JSON action from the new text, dispatches the action to a tool
// and feeds the tool's text back as the observation.
//
// # Quick Start
//
//	llm, _ := openai.New(openai.WithModel("gpt-4o-mini"))
//	service := models.NewLangChain(llm).WithModelName("gpt-4o-mini")
//
//	registry, _ := toolchain.NewRegistry(tools.NewCalculator())
//
//	agent := react.NewAgent(service, registry).
//	    WithMaxIterations(10)
//
//	answer, err := agent.Interact(ctx, "What is 2+2?")
//	if err != nil {
//	    // the generation service failed; nothing was recovered
//	}
//	fmt.Println(answer) // "4", or FallbackAnswer when the model misbehaved
//
// # Tools
//
// A [Tool] takes one input of any JSON type and always answers with text. Failures are part of
// the answer ("Error in calculation: ..."), never a Go error, so a broken tool call becomes an
// observation the model can react to:
//
//	echo := reagent.NewToolFunc("Echo", "text (the text to repeat)", "Error in echo",
//	    func(ctx context.Context, input any) (string, error) {
//	        return fmt.Sprint(input), nil
//	    },
//	)
//
// # Stop Monitor
//
// [StopMonitor] watches generated text and reports [StopStopped] the first time the marker
// appears in text that was not part of the prompt. Backends in the models package call it after
// every streamed chunk and cancel generation as soon as it trips.
//
// # Hooks
//
// Hooks observe generation calls, tool calls, parse failures and finished interactions. Implement
// any of the hook interfaces in hooks.go and register the value with hooks.Registry.
package reagent
