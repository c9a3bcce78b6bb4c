package processing

import "context"

// Context carries everything a derivation strategy needs: the media type of
// the file it is running against, the set of derivation kinds the caller
// requested, the provenance chain leading to this file, and a handle to the
// engine's shared output channel. Contexts are produced by ContextBuilder;
// the pump builds a fresh one, with the chain extended, for every embedded
// child it recurses into.
type Context struct {
	mediaType string
	kinds     KindSet
	chain     []string
	sink      OutputSink
}

// MediaType returns the media type of the file currently being processed.
func (c Context) MediaType() string { return c.mediaType }

// Kinds returns the derivation kinds requested for this run.
func (c Context) Kinds() KindSet { return c.kinds }

// Chain returns the provenance chain of ancestor checksums leading to (but
// not including) the current file. The root's chain is empty.
func (c Context) Chain() []string { return c.chain }

// AddOutput pushes a result into the shared output channel. Strategies
// communicate exclusively through this method; they never return artifacts
// directly, which is what lets the engine join a single strategy's zero,
// one, or many artifacts into the same flattened stream as every sibling.
func (c Context) AddOutput(ctx context.Context, out Output) error {
	return c.sink.Send(ctx, out)
}

// Release drops the context's own handle to the output sink. Every
// Engine.Process call owns exactly one handle - either the root handle
// returned by NewOutputChannel, or a clone minted for it by
// NewEmbedded - and must Release it exactly once after the strategies it
// launched have all finished sending, or the output channel never closes.
func (c Context) Release() {
	c.sink.Release()
}

// Clone derives a new Context for a child file discovered while processing
// the current one, carrying over the requested kinds and output sink but
// switching to the child's media type. The provenance chain is left
// unchanged; callers that are descending into an embedded file extend it
// explicitly via ContextBuilder.
func (c Context) Clone(mediaType string) Context {
	return Context{
		mediaType: mediaType,
		kinds:     c.kinds,
		chain:     c.chain,
		sink:      c.sink.Clone(),
	}
}

// ContextBuilder constructs a Context. Use NewContextBuilder for the root
// of a run; ContextBuilder.From seeds a builder from an existing Context
// (e.g. to extend the provenance chain before a recursive engine call).
type ContextBuilder struct {
	ctx Context
}

// NewContextBuilder starts a builder for the root of a processing run.
func NewContextBuilder(mediaType string, kinds KindSet, sink OutputSink) *ContextBuilder {
	return &ContextBuilder{ctx: Context{mediaType: mediaType, kinds: kinds, sink: sink}}
}

// ContextBuilderFrom seeds a builder from an existing context, useful when
// only the provenance chain needs to change (e.g. the pump extending it by
// one checksum before recursing).
func ContextBuilderFrom(ctx Context) *ContextBuilder {
	return &ContextBuilder{ctx: ctx}
}

// MediaType overrides the media type.
func (b *ContextBuilder) MediaType(mediaType string) *ContextBuilder {
	b.ctx.mediaType = mediaType
	return b
}

// Kinds overrides the requested derivation kinds.
func (b *ContextBuilder) Kinds(kinds KindSet) *ContextBuilder {
	b.ctx.kinds = kinds
	return b
}

// Chain overrides the provenance chain. Chains are append-only per descent;
// callers must pass the full extended chain, not a delta.
func (b *ContextBuilder) Chain(chain []string) *ContextBuilder {
	b.ctx.chain = chain
	return b
}

// Sink overrides the output sink handle.
func (b *ContextBuilder) Sink(sink OutputSink) *ContextBuilder {
	b.ctx.sink = sink
	return b
}

// Build returns the constructed Context.
func (b *ContextBuilder) Build() Context {
	return b.ctx
}
