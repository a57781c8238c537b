// Command react answers questions from the console with the ReAct agent.
//
//	react -config reagent.yaml -tools calculator,wikipedia
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rickchristie/reagent/agents/react"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/hooks"
	"github.com/rickchristie/reagent/internal/setup"
	"github.com/rickchristie/reagent/toolchain"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file")
	toolNames := flag.String("tools", setup.ToolCalculator, "comma-separated tools: calculator, wikipedia, papers, search")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := setup.NewLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}

	service, err := setup.NewService(cfg)
	if err != nil {
		return err
	}
	tools, err := setup.NewTools(cfg, strings.Split(*toolNames, ",")...)
	if err != nil {
		return err
	}
	registry, err := toolchain.NewRegistry(tools...)
	if err != nil {
		return err
	}

	logHook := hooks.NewLoggerHook(logger)
	if cfg.Verbose {
		logHook.WithVerbose(os.Stderr)
	}
	agent := react.NewAgent(service, registry).
		WithSampling(cfg.SamplingConfig()).
		WithStopMarker(cfg.StopMarker).
		WithMaxIterations(cfg.MaxIterations).
		RegisterHook(logHook)

	rl, err := setup.NewConsole(questionPrompt, cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer rl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("agent ready", "backend", cfg.Backend, "model", cfg.Model, "tools", registry.Names())
	return console(ctx, rl, os.Stdout, os.Stderr, agent)
}
