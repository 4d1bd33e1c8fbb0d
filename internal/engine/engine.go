// Package engine implements the ProMis engine (component G): turning a
// fitted StaR Map and a landscape logic program into one probability per
// target location, by batching target points, asking the StaR Map for
// predicted relation moments, emitting distributional-clause programs, and
// farming them out to a solver across a bounded worker pool.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kohaut/promis/internal/config"
	"github.com/kohaut/promis/internal/geo"
	"github.com/kohaut/promis/internal/logic"
	"github.com/kohaut/promis/internal/monitoring"
	"github.com/kohaut/promis/internal/solver"
	"github.com/kohaut/promis/internal/spatial"
	"github.com/kohaut/promis/internal/starmap"
)

// SolveOptions tunes one Solve call.
type SolveOptions struct {
	// NJobs caps how many batches are in flight concurrently. 0 means
	// unbounded (every batch runs as soon as its goroutine is scheduled).
	NJobs int
	// BatchSize is how many target points share one solver invocation.
	// 0 means "everything in one batch".
	BatchSize int
	// ShowProgress logs a line as each batch completes.
	ShowProgress bool
	// PrintFirst logs the first batch's assembled program, for debugging.
	PrintFirst bool
}

// ProMis ties together a fitted StaR Map, a landscape logic program and a
// solver into a single Solve operation.
type ProMis struct {
	StarMap *starmap.StarMap
	Logic   string
	Solver  solver.Solver
	Cfg     *config.Config

	mu             sync.Mutex
	mentionedCache map[string][]logic.RelationRef
}

// New builds a ProMis engine over an already-initialized StaR Map.
func New(sm *starmap.StarMap, logicProgram string, slv solver.Solver, cfg *config.Config) *ProMis {
	return &ProMis{
		StarMap:        sm,
		Logic:          logicProgram,
		Solver:         slv,
		Cfg:            cfg,
		mentionedCache: make(map[string][]logic.RelationRef),
	}
}

func (p *ProMis) mentionedRelations(logicProgram string) ([]logic.RelationRef, error) {
	p.mu.Lock()
	if refs, ok := p.mentionedCache[logicProgram]; ok {
		p.mu.Unlock()
		return refs, nil
	}
	p.mu.Unlock()

	refs, err := logic.MentionedRelations(logicProgram, p.StarMap.Registry)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.mentionedCache[logicProgram] = refs
	p.mu.Unlock()
	return refs, nil
}

// Solve predicts every relation the landscape program mentions over the
// StaR Map's target, batches target points, and asks the solver to
// evaluate the program's probability at each one. Results preserve target
// order regardless of how batches complete.
func (p *ProMis) Solve(ctx context.Context, opts SolveOptions) (*geo.CartesianCollection, error) {
	refs, err := p.mentionedRelations(p.Logic)
	if err != nil {
		return nil, err
	}

	relations := make(map[logic.RelationRef]*spatial.Relation, len(refs))
	for _, ref := range refs {
		rel, err := p.StarMap.Get(ref)
		if err != nil {
			return nil, err
		}
		relations[ref] = rel
	}

	n := p.StarMap.Target.Len()
	batches := batchIndexes(n, opts.BatchSize)
	results := make([][]float64, len(batches))

	runID := uuid.New().String()
	if opts.ShowProgress {
		monitoring.Logf("engine: solve %s starting, %d target points in %d batches", runID, n, len(batches))
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.NJobs > 0 {
		g.SetLimit(opts.NJobs)
	}

	for b, indexes := range batches {
		b, indexes := b, indexes
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			program := buildBatchProgram(p.Logic, relations, refs, indexes)
			if opts.PrintFirst && b == 0 {
				monitoring.Logf("engine: solve %s first batch program:\n%s", runID, program)
			}
			probabilities, err := p.Solver.Infer(gctx, program)
			if err != nil {
				return err
			}
			if len(probabilities) != len(indexes) {
				return fmt.Errorf("engine: solver returned %d probabilities for a batch of %d", len(probabilities), len(indexes))
			}
			results[b] = probabilities
			if opts.ShowProgress {
				monitoring.Logf("engine: solve %s batch %d/%d complete", runID, b+1, len(batches))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, err
	}

	out := geo.NewCollection(p.StarMap.Target.OriginLocation(), 1)
	for b, indexes := range batches {
		for j, i := range indexes {
			if err := out.Append(p.StarMap.Target.East(i), p.StarMap.Target.North(i), results[b][j]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
