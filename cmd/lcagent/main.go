// Command lcagent answers one question with langchaingo's ReAct executor, using web search (when
// SERPAPI_API_KEY is set) and Wikipedia.
//
//	lcagent "what is a language model?"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rickchristie/reagent/agents/lcagent"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/internal/setup"
	"github.com/rickchristie/reagent/tools"
	lctools "github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/serpapi"
	"github.com/tmc/langchaingo/tools/wikipedia"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError: %v\033[0m\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()
	question := strings.Join(flag.Args(), " ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := setup.NewLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}
	model, err := setup.NewChatModel(cfg)
	if err != nil {
		return err
	}

	var agentTools []lctools.Tool
	if cfg.SerpAPIAPIKey != "" {
		search, err := serpapi.New(serpapi.WithAPIKey(cfg.SerpAPIAPIKey))
		if err != nil {
			return fmt.Errorf("failed to create serpapi tool: %w", err)
		}
		agentTools = append(agentTools, search)
	} else {
		logger.Warn("SERPAPI_API_KEY not set, web search disabled")
	}
	agentTools = append(agentTools, wikipedia.New(tools.DefaultUserAgent))

	opts := []lcagent.Option{lcagent.WithMaxIterations(cfg.MaxIterations), lcagent.WithParseRecovery()}
	if cfg.Verbose {
		opts = append(opts, lcagent.WithLogger(logger))
	}
	agent := lcagent.New(model, agentTools, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	answer, err := agent.Run(ctx, question)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
