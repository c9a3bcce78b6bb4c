package processing

import (
	"context"
	"sync"
)

// OutputSink is a cloneable handle to the engine's output channel. Every
// Engine.Process call owns one handle, which the strategies it launches all
// send through; every embedded artifact carries a clone for the recursive
// engine call on it. The underlying channel closes only once every handle
// has been Released, which
// is what lets sibling strategies - and children discovered arbitrarily deep
// in the embedding tree - all push into a single flattened stream without
// the reader ever needing to know how many producers are still live.
//
// OutputSink is safe for concurrent use: Send may be called concurrently by
// any number of clones, and Clone/Release are themselves safe to call from
// multiple goroutines.
type OutputSink struct {
	ch chan Output
	wg *sync.WaitGroup
}

// Output is an item pushed into the output channel: either a successfully
// produced Artifact, or an error sentinel recording a strategy or per-child
// failure. Exactly one of Artifact or Err is meaningful.
type Output struct {
	Artifact Artifact
	Err      error
}

// NewOutputChannel creates a bounded output channel and the initial sink
// handle that owns it. The caller (normally the root Engine.Process call)
// must Release its handle once every strategy it launched has finished
// sending, or the reader will block forever waiting for the channel to close.
func NewOutputChannel(buffer int) (OutputSink, <-chan Output) {
	ch := make(chan Output, buffer)
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		wg.Wait()
		close(ch)
	}()
	return OutputSink{ch: ch, wg: wg}, ch
}

// Clone returns a new handle to the same channel, incrementing the
// outstanding-producer count. Every artifact carrying Embedded data clones
// the sink, so the recursive engine call on it owns a handle of its own.
func (s OutputSink) Clone() OutputSink {
	s.wg.Add(1)
	return s
}

// Release drops this handle. Once every clone (including the original) has
// been released, the channel closes and the consumer's range loop ends.
func (s OutputSink) Release() {
	s.wg.Done()
}

// Send pushes an item into the channel, respecting ctx cancellation so a
// stalled archive sink backpressures all the way to leaf strategies instead
// of leaking a blocked goroutine forever.
func (s OutputSink) Send(ctx context.Context, out Output) error {
	select {
	case s.ch <- out:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
