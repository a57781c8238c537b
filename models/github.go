package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/openai"
)

// GitHubModelsBaseURL is the OpenAI-compatible endpoint of the GitHub Models API.
const GitHubModelsBaseURL = "https://models.github.ai/inference"

// ErrMissingGitHubToken is returned by NewGitHubModels without a token.
var ErrMissingGitHubToken = errors.New(
	"github token is required: create a fine-grained PAT with models:read " +
		"at https://github.com/settings/personal-access-tokens/new",
)

// githubHeaderTransport adds the GitHub API version header to every request.
type githubHeaderTransport struct {
	base http.RoundTripper
}

func (t *githubHeaderTransport) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return t.base.RoundTrip(req)
}

// NewGitHubModels creates a LangChain backend served by GitHub Models. Model names use the
// publisher/model form, e.g. "openai/gpt-4.1-mini" or "meta/llama-4-scout".
//
// Extra openai.Option values are applied last and can override the defaults.
func NewGitHubModels(model, token string, opts ...openai.Option) (*LangChain, error) {
	if token == "" {
		return nil, ErrMissingGitHubToken
	}

	all := append([]openai.Option{
		openai.WithBaseURL(GitHubModelsBaseURL),
		openai.WithToken(token),
		openai.WithModel(model),
		openai.WithHTTPClient(&githubHeaderTransport{base: http.DefaultTransport}),
	}, opts...)

	llm, err := openai.New(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub Models client: %w", err)
	}
	return NewLangChain(llm).WithModelName(model), nil
}
