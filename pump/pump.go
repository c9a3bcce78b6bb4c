// Package pump drains the engine's output channel and turns every artifact
// it carries into an archive entry, recursing into embedded artifacts
// (mbox messages, rfc822 attachments, zip entries) before forwarding them
// on, exactly as the engine's own non-recursive contract expects of its
// caller.
package pump

import (
	"context"
	"sync"

	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/provenance"
	"github.com/ingestkit/ingest/telemetry"
)

// DefaultWorkers is the default size of the bounded worker pool that
// processes outputs concurrently.
const DefaultWorkers = 1000

// DefaultEntryBuffer is the default capacity of the channel ArchiveEntry
// values are delivered on.
const DefaultEntryBuffer = 100

// Processor runs the processing engine against a file. Engine implements
// this; tests substitute a stub to exercise the pump in isolation.
type Processor interface {
	Process(ctx context.Context, pctx processing.Context, inputPath string) error
}

// ArchiveEntry pairs a spooled temp file with the path it should take
// inside the output archive. The receiver takes ownership of the temp
// file's deletion - it must Close it once its bytes have been read into
// the archive.
type ArchiveEntry struct {
	TempFile *processing.TempFile
	Path     string
}

// Pump drains an engine's output channel into a stream of ArchiveEntry
// values, recursing into embedded artifacts when Recurse is set.
type Pump struct {
	Engine  Processor
	Logger  telemetry.Logger
	Workers int
	Recurse bool
}

// New returns a Pump backed by engine. Logger defaults to a no-op
// implementation if nil; workers defaults to DefaultWorkers if zero or
// negative.
func New(engine Processor, logger telemetry.Logger, workers int, recurse bool) *Pump {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pump{Engine: engine, Logger: logger, Workers: workers, Recurse: recurse}
}

// Run drains outputs on a bounded worker pool, returning a channel of
// ArchiveEntry values. The returned channel closes once outputs closes and
// every outstanding worker - including any recursive engine calls spawned
// along the way - has finished. A worker that encounters a processing error
// (its own, or a recursive call's) logs it and moves on; one failing
// artifact never stops its siblings from reaching the archive.
func (p *Pump) Run(ctx context.Context, outputs <-chan processing.Output) <-chan ArchiveEntry {
	entries := make(chan ArchiveEntry, DefaultEntryBuffer)

	go func() {
		defer close(entries)

		sem := make(chan struct{}, p.Workers)
		var wg sync.WaitGroup

		for out := range outputs {
			if out.Err != nil {
				p.Logger.Warn(ctx, "error processing", "error", out.Err)
				continue
			}

			artifact := out.Artifact
			sem <- struct{}{}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				p.handle(ctx, artifact, entries)
			}()
		}

		wg.Wait()
	}()

	return entries
}

// handle turns a single artifact into an archive entry, recursing first if
// it is an embedded artifact and recursion is enabled.
func (p *Pump) handle(ctx context.Context, artifact processing.Artifact, entries chan<- ArchiveEntry) {
	switch a := artifact.(type) {
	case processing.DerivedArtifact:
		p.forward(ctx, a.Chain(), a.Data(), entries)

	case processing.EmbeddedArtifact:
		data := a.Data()
		chain := append(append([]string{}, a.Chain()...), data.Checksum)

		if p.Recurse {
			pctx := processing.NewContextBuilder(data.MediaType, data.RequestedKinds, a.Sink()).
				Chain(chain).
				Build()
			if err := p.Engine.Process(ctx, pctx, data.TempFile.Path()); err != nil {
				p.Logger.Warn(ctx, "error processing embedded artifact", "name", data.Name, "error", err)
			}
		} else {
			a.Sink().Release()
		}

		p.forward(ctx, chain, data, entries)

	default:
		p.Logger.Warn(ctx, "unrecognized artifact type, dropping")
	}
}

func (p *Pump) forward(ctx context.Context, chain []string, data processing.ArtifactData, entries chan<- ArchiveEntry) {
	archivePath := provenance.BuildPath(chain, data.Name)
	select {
	case entries <- ArchiveEntry{TempFile: data.TempFile, Path: archivePath}:
	case <-ctx.Done():
		data.TempFile.Close()
	}
}
