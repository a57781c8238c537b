// Package tools provides ready-made tools for the ReAct agent.
//
//   - [NewCalculator] evaluates arithmetic expressions in a sandboxed JavaScript runtime.
//   - [FromLangChain] adapts any langchaingo tool, e.g. Wikipedia or SerpAPI search.
//   - [NewPaperSearch] exposes a paper search backend, such as the Semantic Scholar client.
package tools
