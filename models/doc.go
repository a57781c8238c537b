// Package models adapts text-generation backends to [reagent.GenerationService].
//
// Every backend streams when it can and feeds each chunk into the request's
// [reagent.StopMonitor], abandoning the call the moment the monitor stops. Backends that return
// the whole completion at once are cut after the first marker instead, so the agent sees the same
// text either way.
//
// # Available Backends
//
//   - [LangChain]: any langchaingo llms.Model (OpenAI, Ollama, GitHub Models, ...)
//   - [Completions]: raw OpenAI-compatible /v1/completions through openai-go, for servers that
//     continue a plain prompt (vLLM, llama.cpp, TGI)
//   - [Gollm]: any provider supported by gollm
//
// None of them retry. Failures are returned as [reagent.GenerationError] values.
package models
