// Command research searches Semantic Scholar for papers on a topic, keeps the relevant ones and
// refines the query until at least two relevant papers are found.
//
//	research -mermaid "service composition roman model"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rickchristie/reagent/agents/research"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/graph"
	"github.com/rickchristie/reagent/internal/setup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError: %v\033[0m\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file")
	mermaid := flag.Bool("mermaid", false, "print the workflow as a Mermaid flowchart and exit")
	flag.Parse()
	query := strings.Join(flag.Args(), " ")

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

	client := setup.NewScholar(cfg)
	defer client.Close()

	agents := research.NewAgents(client, model).
		WithPaperLimit(cfg.Research.PaperLimit).
		WithLogger(logger)

	if *mermaid {
		g, err := research.NewGraph(agents)
		if err != nil {
			return err
		}
		fmt.Print(g.Mermaid())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, err := research.Run(ctx, agents, query, cfg.Research.MaxSteps)
	if err != nil && !errors.Is(err, graph.ErrStepLimit) {
		return err
	}
	if err != nil {
		logger.Warn("stopped before finalizing", "error", err)
	}

	if final.Finalized() {
		fmt.Println(final.Summary)
	} else {
		fmt.Println("Refined Query Suggested:")
		fmt.Println(final.Query)
	}
	return nil
}
