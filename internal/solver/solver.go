// Package solver adapts the black-box hybrid-probabilistic-logic inference
// oracle (component H): it hands a solver a distributional-clause program
// and receives back one probability per query atom, without knowing
// anything about how that probability was computed.
package solver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kohaut/promis/internal/config"
)

// Solver evaluates a logic program's landscape query at every batched
// location and returns one probability per location, in program order.
type Solver interface {
	Infer(ctx context.Context, program string) ([]float64, error)
}

// ProcessSolver shells out to an external inference executable, writing the
// program to its stdin and reading a JSON array of probabilities from its
// stdout. Any failure — nonzero exit, malformed output, timeout — is fatal
// and reported as a *SolverError (spec §7: solver failures are never
// swallowed or retried locally).
type ProcessSolver struct {
	Builder CommandBuilder
	Cfg     *config.Config
}

// NewProcessSolver returns a ProcessSolver that shells out via os/exec.
func NewProcessSolver(cfg *config.Config) *ProcessSolver {
	return &ProcessSolver{Builder: NewRealCommandBuilder(), Cfg: cfg}
}

func (s *ProcessSolver) Infer(ctx context.Context, program string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Cfg.GetSolverTimeout())
	defer cancel()

	args := append([]string{
		"--n-samples", fmt.Sprint(s.Cfg.GetSolverNSamples()),
		"--dtype", s.Cfg.GetSolverDType(),
		"--device", s.Cfg.GetSolverDevice(),
	}, s.Cfg.GetSolverArgs()...)

	executor := s.Builder.BuildCommand(s.Cfg.GetSolverExecutable(), args...)
	executor.SetStdin([]byte(program))

	stdout, stderr, err := executor.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newSolverError(program, strings.TrimSpace(string(stderr)), ErrCancelled)
		}
		return nil, newSolverError(program, strings.TrimSpace(string(stderr)), err)
	}

	var probabilities []float64
	if err := json.Unmarshal(stdout, &probabilities); err != nil {
		return nil, newSolverError(program, strings.TrimSpace(string(stderr)), fmt.Errorf("parse solver output: %w", err))
	}
	return probabilities, nil
}
