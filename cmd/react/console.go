package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

const (
	questionPrompt = "Your Question: "
	exitCommand    = "exit"
)

type lineReader interface {
	Readline() (string, error)
}

// answerer is satisfied by react.Agent.
type answerer interface {
	Interact(ctx context.Context, question string) (string, error)
}

// console asks one question per line until "exit", EOF or Ctrl-C. A failed question is
// reported and the console keeps going.
func console(ctx context.Context, in lineReader, out, errOut io.Writer, agent answerer) error {
	fmt.Fprintln(out, "ReAct Agent Initialized. Type 'exit' to quit.")
	fmt.Fprintln(out)

	for {
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "Exiting...")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		question := strings.TrimSpace(line)
		if strings.EqualFold(question, exitCommand) {
			fmt.Fprintln(out, "Exiting...")
			return nil
		}
		if question == "" {
			continue
		}

		answer, err := agent.Interact(ctx, question)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(errOut, "%sError: %v%s\n\n", colorRed, err, colorReset)
			continue
		}
		fmt.Fprintf(out, "Agent's Answer: %s\n\n", answer)
	}
}
