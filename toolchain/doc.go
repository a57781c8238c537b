// Package toolchain holds the tools an agent may call and turns the model's "Action:" blocks into
// tool invocations.
//
// # Registry
//
// A [Registry] is built once from a fixed list of tools and never changes afterwards. Iteration
// order is registration order, which is also the order tools are listed in the prompt.
//
//	registry, err := toolchain.NewRegistry(tools.NewCalculator(), wiki)
//	if err != nil {
//	    return err // duplicate names or an invalid input schema
//	}
//	out, err := registry.Dispatch(ctx, "Calculator", "2+2") // "The result is 4."
//
// Dispatch only fails for names that are not registered ([reagent.ErrUnknownTool]). Tool
// failures and schema violations come back as observation text.
//
// # Action Parsing
//
// Parsing is split in two stages that can be tested on their own:
//
//  1. [ExtractActionBlob] finds "Action:" followed by an optional ``` fence and captures the
//     smallest {...} object after it.
//  2. [ParseAction] decodes that object strictly as {"action": string, "action_input": any}.
//
// [HasActionLine] reports whether any line starts with "Action:", which gates the two stages.
package toolchain
