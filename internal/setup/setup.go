// Package setup turns a loaded config into the objects the command-line programs run: a logger,
// a generation backend, chat models, tools and the console.
package setup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/lmittmann/tint"
	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/models"
	"github.com/rickchristie/reagent/scholar"
	"github.com/rickchristie/reagent/tools"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/tools/serpapi"
)

// Tool names accepted by NewTools.
const (
	ToolCalculator = "calculator"
	ToolWikipedia  = "wikipedia"
	ToolSearch     = "search"
	ToolPapers     = "papers"
)

// localToken is sent to OpenAI-compatible servers that do not check keys.
const localToken = "local"

var (
	ErrNoChatModel = errors.New("backend has no chat model")
	ErrUnknownTool = errors.New("unknown tool")
)

// NewLogger writes colored logs to w at the configured level.
func NewLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return slog.New(handler), nil
}

// NewService returns the generation backend named by cfg.Backend.
func NewService(cfg *config.Config) (reagent.GenerationService, error) {
	switch cfg.Backend {
	case config.BackendCompletions:
		return models.NewCompletionsFromKey(token(cfg), cfg.BaseURL, cfg.Model), nil
	case config.BackendGollm:
		g, err := models.NewGollm(cfg.Provider, cfg.Model, cfg.OpenAIAPIKey, cfg.SamplingConfig())
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.BackendLangChain, config.BackendGitHub, config.BackendOllama:
		lc, err := newLangChain(cfg)
		if err != nil {
			return nil, err
		}
		return lc, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

// NewChatModel returns a langchaingo chat model for the agents built on langchaingo. Only the
// langchain, github and ollama backends have one.
func NewChatModel(cfg *config.Config) (llms.Model, error) {
	switch cfg.Backend {
	case config.BackendLangChain, config.BackendGitHub, config.BackendOllama:
		lc, err := newLangChain(cfg)
		if err != nil {
			return nil, err
		}
		return lc.Unwrap(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoChatModel, cfg.Backend)
	}
}

func newLangChain(cfg *config.Config) (*models.LangChain, error) {
	switch cfg.Backend {
	case config.BackendGitHub:
		return models.NewGitHubModels(cfg.Model, cfg.GitHubToken)
	case config.BackendOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		llm, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return models.NewLangChain(llm).WithModelName(cfg.Model), nil
	default:
		opts := []openai.Option{openai.WithToken(token(cfg)), openai.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return models.NewLangChain(llm).WithModelName(cfg.Model), nil
	}
}

func token(cfg *config.Config) string {
	if cfg.OpenAIAPIKey != "" {
		return cfg.OpenAIAPIKey
	}
	return localToken
}

// NewScholar creates the paper search client from the research settings.
func NewScholar(cfg *config.Config) *scholar.Client {
	r := cfg.Research
	return scholar.NewClient(r.ScholarURL,
		scholar.WithAPIKey(r.ScholarAPIKey),
		scholar.WithLimit(r.PaperLimit),
		scholar.WithTimeout(r.Timeout),
	)
}

// NewTools builds the named tools in order. "search" needs SERPAPI_API_KEY.
func NewTools(cfg *config.Config, names ...string) ([]reagent.Tool, error) {
	var out []reagent.Tool
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case ToolCalculator:
			out = append(out, tools.NewCalculator())
		case ToolWikipedia:
			out = append(out, tools.NewWikipedia(tools.DefaultUserAgent))
		case ToolPapers:
			out = append(out, tools.NewPaperSearch(NewScholar(cfg)))
		case ToolSearch:
			if cfg.SerpAPIAPIKey == "" {
				return nil, fmt.Errorf("%w: tool %q needs SERPAPI_API_KEY", config.ErrMissingAPIKey, name)
			}
			search, err := serpapi.New(serpapi.WithAPIKey(cfg.SerpAPIAPIKey))
			if err != nil {
				return nil, fmt.Errorf("failed to create serpapi tool: %w", err)
			}
			out = append(out, tools.FromLangChain(search, "query (a web search query)"))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
		}
	}
	return out, nil
}

// NewConsole creates a line editor with persistent history. An empty historyFile disables it.
func NewConsole(prompt, historyFile string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}
