// Package engine runs every derivation strategy that dispatch selects for a
// file, concurrently, joining their results into the context's output
// channel. The engine never recurses into the files its strategies
// discover; that is the output pump's job, one layer up.
package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ingestkit/ingest/identity"
	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/processing/dispatch"
	"github.com/ingestkit/ingest/telemetry"
)

// Engine computes a file's deduplication checksum, resolves the derivation
// strategies that apply to it, and runs them concurrently.
type Engine struct {
	Dispatch dispatch.Table
	Logger   telemetry.Logger
	Tracer   telemetry.Tracer
}

// New returns an Engine backed by table. Logger and Tracer default to their
// no-op implementations if nil.
func New(table dispatch.Table, logger telemetry.Logger, tracer telemetry.Tracer) *Engine {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}
	return &Engine{Dispatch: table, Logger: logger, Tracer: tracer}
}

// Process runs every applicable derivation strategy against the file at
// inputPath, writing their results into pctx's output channel. It returns
// once every strategy has finished (successfully or not); the first
// strategy error is returned after all have completed, so a single failing
// strategy never cuts off the others' output.
func (e *Engine) Process(ctx context.Context, pctx processing.Context, inputPath string) error {
	ctx, span := e.Tracer.Start(ctx, "engine.Process")
	defer span.End()
	defer pctx.Release()

	checksum, err := identity.ChecksumOfPath(inputPath, pctx.MediaType())
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	strategies := e.Dispatch.Strategies(pctx.MediaType(), pctx.Kinds())
	e.Logger.Debug(ctx, "resolved strategies", "mediaType", pctx.MediaType(), "count", len(strategies))

	var group errgroup.Group
	for _, s := range strategies {
		s := s
		group.Go(func() error {
			if err := s.Derive(ctx, pctx, inputPath, checksum); err != nil {
				e.Logger.Error(ctx, "strategy failed", "strategy", s.Name(), "error", err)
				return fmt.Errorf("strategy %s: %w", s.Name(), err)
			}
			return nil
		})
	}

	return group.Wait()
}
