// Package react implements the ReAct interaction loop on top of a plain text-completion backend.
//
// # Quick Start
//
//	service := models.NewLangChain(llm).WithModelName("gpt-3.5-turbo-instruct")
//	registry := toolchain.MustNewRegistry(tools.NewCalculator())
//
//	agent := react.NewAgent(service, registry)
//	answer, err := agent.Interact(ctx, "What is 2+2?")
//
// The agent renders the instructions once with [BuildPrompt], then alternates generation and tool
// calls. Each generation continues the full transcript. When the model writes "Observation:" the
// step is cut, the requested tool runs, and its text is appended after the action.
//
// # Outcomes
//
//   - A "Final Answer:" line ends the question with that answer.
//   - No Action line, no JSON object or malformed JSON returns [reagent.FallbackAnswer].
//   - An action naming an unregistered tool records a synthetic "Final Answer:" line and returns
//     [reagent.FallbackAnswer].
//   - Backend failures are returned as errors wrapping [reagent.GenerationError].
//
// # Iteration Bound
//
// [Agent.WithMaxIterations] caps the number of generation calls; the default is
// [DefaultMaxIterations]. Pass 0 to loop until the model answers.
package react
