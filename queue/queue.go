// Package queue batches completed archive entries onto a Pulse/Redis stream,
// for deployments that decouple archive production (the pump) from archive
// consumption (a downstream indexer or notifier) instead of writing directly
// to a local zip file.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ingestkit/ingest/features/stream/pulse/clients/pulse"
)

// Entry describes one archived file, ready to publish once its batch fills
// or Flush is called.
type Entry struct {
	Path      string `json:"path"`
	MediaType string `json:"mimetype"`
	Checksum  string `json:"checksum"`
}

// DefaultBatchSize mirrors the original worker's Redis XADD batching: entries
// accumulate until this many are pending, then publish concurrently.
const DefaultBatchSize = 25

// Batcher accumulates Entry values and publishes them to a named Pulse
// stream in batches. It is not safe for concurrent use; callers that push
// from multiple goroutines must serialize their own access.
type Batcher struct {
	stream    pulse.Stream
	batchSize int
	pending   []Entry
}

// NewBatcher opens (or creates) the named stream on client and returns a
// Batcher that publishes to it in batches of batchSize (DefaultBatchSize if
// zero or negative).
func NewBatcher(client pulse.Client, streamName string, batchSize int) (*Batcher, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	stream, err := client.Stream(streamName)
	if err != nil {
		return nil, fmt.Errorf("open stream %q: %w", streamName, err)
	}
	return &Batcher{stream: stream, batchSize: batchSize}, nil
}

// Push queues an entry, flushing the batch immediately once it reaches the
// configured batch size.
func (b *Batcher) Push(ctx context.Context, entry Entry) error {
	b.pending = append(b.pending, entry)
	if len(b.pending) >= b.batchSize {
		return b.Flush(ctx)
	}
	return nil
}

// Flush publishes every pending entry concurrently and clears the batch. It
// is a no-op when nothing is pending. Call it once after the last Push to
// drain any partial batch.
func (b *Batcher) Flush(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(b.pending))
	for i, entry := range b.pending {
		i, entry := i, entry
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, err := json.Marshal(entry)
			if err != nil {
				errs[i] = fmt.Errorf("marshal entry %q: %w", entry.Path, err)
				return
			}
			if _, err := b.stream.Add(ctx, "archive-entry", payload); err != nil {
				errs[i] = fmt.Errorf("publish entry %q: %w", entry.Path, err)
			}
		}()
	}
	wg.Wait()

	b.pending = b.pending[:0]
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
