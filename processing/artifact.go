package processing

// ArtifactData carries the fields common to every artifact: the leaf name
// it will take in the archive, the scratch file it owns, its media type,
// its deduplication checksum, and the derivation kinds that were requested
// when it was produced (forwarded unchanged to any children).
type ArtifactData struct {
	Name           string
	TempFile       *TempFile
	MediaType      string
	Checksum       string
	RequestedKinds KindSet
}

// Artifact is either a DerivedArtifact or an EmbeddedArtifact. It is a
// closed, tagged union (not a class hierarchy): switch on the concrete type
// to handle the two cases, the way the pump does.
type Artifact interface {
	// Chain returns the provenance chain in effect when the artifact was
	// produced - the ancestor checksums leading to (but not including) the
	// file that produced this artifact.
	Chain() []string
	// Data returns the artifact's common fields.
	Data() ArtifactData

	isArtifact()
}

// DerivedArtifact is a file produced by running a derivation strategy
// against the current file (extracted.txt, metadata.json, rendered.pdf).
type DerivedArtifact struct {
	chain []string
	data  ArtifactData
}

// EmbeddedArtifact is a file discovered inside the current file (an mbox
// message, an rfc822 attachment, a zip entry). It additionally carries a
// clone of the output sink so the pump's recursive engine call can keep
// writing into the same flattened stream.
type EmbeddedArtifact struct {
	chain []string
	data  ArtifactData
	sink  OutputSink
}

func (a DerivedArtifact) Chain() []string   { return a.chain }
func (a DerivedArtifact) Data() ArtifactData { return a.data }
func (DerivedArtifact) isArtifact()          {}

func (a EmbeddedArtifact) Chain() []string   { return a.chain }
func (a EmbeddedArtifact) Data() ArtifactData { return a.data }

// Sink returns the clone of the output channel handle this embedded
// artifact carries. It is Released exactly once: by the recursive
// Engine.Process call it is handed to, or by the pump directly if recursion
// is disabled.
func (a EmbeddedArtifact) Sink() OutputSink { return a.sink }
func (EmbeddedArtifact) isArtifact()        {}

// NewDerived builds a Derived artifact for the strategy's output, stamping
// it with the context's current provenance chain and requested kinds.
func NewDerived(ctx Context, name string, tmp *TempFile, mediaType, checksum string) DerivedArtifact {
	return DerivedArtifact{
		chain: ctx.Chain(),
		data: ArtifactData{
			Name:           name,
			TempFile:       tmp,
			MediaType:      mediaType,
			Checksum:       checksum,
			RequestedKinds: ctx.Kinds(),
		},
	}
}

// NewEmbedded builds an Embedded artifact, cloning the context's output
// sink so the pump can recurse into it while still writing to the shared
// stream.
func NewEmbedded(ctx Context, name string, tmp *TempFile, mediaType, checksum string) EmbeddedArtifact {
	return EmbeddedArtifact{
		chain: ctx.Chain(),
		data: ArtifactData{
			Name:           name,
			TempFile:       tmp,
			MediaType:      mediaType,
			Checksum:       checksum,
			RequestedKinds: ctx.Kinds(),
		},
		sink: ctx.sink.Clone(),
	}
}
