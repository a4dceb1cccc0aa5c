// Command lineagg aggregates a large `name;value` file into a sorted
// min/mean/max summary per name. See internal/engine for the pipeline
// that does the actual work; this file is just the CLI shell spec.md
// treats as an external collaborator (argument parsing, program entry,
// exit codes).
package main

import (
	"errors"
	"fmt"
	"os"

	"lineagg/internal/engine"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: lineagg <path-to-input-file>")
		os.Exit(1)
	}

	report, err := run(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "lineagg: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
	fmt.Println(report)
}

func run(path string) (string, error) {
	p := engine.New()
	merged, err := p.Run(path)
	if err != nil {
		return "", err
	}
	return engine.Render(merged), nil
}

// exitCodeFor keeps the process exit code non-zero on any fatal error
// while still letting callers distinguish kinds via errors.Is if they
// capture stderr; spec.md §6 only requires "non-zero on any fatal
// error", so a single exit code is sufficient, but classifying by kind
// here keeps the door open without adding a flag surface.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInputNotFound):
		return 2
	case errors.Is(err, engine.ErrInputNotReadable):
		return 3
	case errors.Is(err, engine.ErrMapFailed):
		return 4
	case errors.Is(err, engine.ErrOutOfMemory):
		return 5
	case errors.Is(err, engine.ErrInvariantViolated):
		return 6
	default:
		return 1
	}
}
