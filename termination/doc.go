// Package termination decides when an interaction is over.
//
// A generation step ends the interaction when its new content carries a line starting with
// "Final Answer:". Several such lines may appear when the model runs ahead of itself; the last
// one wins:
//
//	answer, ok := termination.FinalAnswer("Thought: done\nFinal Answer: 4")
//	// answer == "4", ok == true
//
// [NewContent] strips the prompt from a backend's full output, and [FallbackLine] is the
// synthetic line recorded when the model asks for a tool that does not exist.
package termination
