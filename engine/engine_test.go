package engine

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/processing/dispatch"
	"github.com/ingestkit/ingest/processing/strategy"
)

type stubStrategy struct {
	name    string
	emit    func(pctx processing.Context, checksum string) processing.Output
	wantErr error
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Derive(ctx context.Context, pctx processing.Context, inputPath, checksum string) error {
	if s.wantErr != nil {
		return s.wantErr
	}
	if s.emit != nil {
		return pctx.AddOutput(ctx, s.emit(pctx, checksum))
	}
	return nil
}

func newInputFile(t *testing.T, content string) string {
	t.Helper()
	tmp, err := processing.NewTempFile()
	require.NoError(t, err)
	t.Cleanup(func() { tmp.Close() })
	require.NoError(t, os.WriteFile(tmp.Path(), []byte(content), 0o600))
	return tmp.Path()
}

func TestEngine_Process_RunsEveryDispatchedStrategyAndClosesOutput(t *testing.T) {
	input := newInputFile(t, "hello world")

	table := dispatch.Table{
		Text: stubStrategy{name: "text", emit: func(pctx processing.Context, checksum string) processing.Output {
			tmp, _ := processing.NewTempFile()
			return processing.Output{Artifact: processing.NewDerived(pctx, processing.NameExtractedText, tmp, processing.MediaTextPlain, checksum)}
		}},
		Metadata: stubStrategy{name: "metadata", emit: func(pctx processing.Context, checksum string) processing.Output {
			tmp, _ := processing.NewTempFile()
			return processing.Output{Artifact: processing.NewDerived(pctx, processing.NameMetadataJSON, tmp, processing.MediaJSON, checksum)}
		}},
	}

	sink, outputs := processing.NewOutputChannel(10)
	pctx := processing.NewContextBuilder(processing.MediaJPEG, processing.KindSet{processing.KindText, processing.KindMetadata}, sink).Build()

	e := New(table, nil, nil)
	err := e.Process(context.Background(), pctx, input)
	require.NoError(t, err)

	var names []string
	for out := range outputs {
		require.NoError(t, out.Err)
		names = append(names, out.Artifact.Data().Name)
	}
	assert.ElementsMatch(t, []string{processing.NameExtractedText, processing.NameMetadataJSON}, names)
}

func TestEngine_Process_OneStrategyFailingStillLetsSiblingsEmit(t *testing.T) {
	input := newInputFile(t, "hello world")

	boom := errors.New("boom")
	table := dispatch.Table{
		Text: stubStrategy{name: "text", wantErr: boom},
		Metadata: stubStrategy{name: "metadata", emit: func(pctx processing.Context, checksum string) processing.Output {
			tmp, _ := processing.NewTempFile()
			return processing.Output{Artifact: processing.NewDerived(pctx, processing.NameMetadataJSON, tmp, processing.MediaJSON, checksum)}
		}},
	}

	sink, outputs := processing.NewOutputChannel(10)
	pctx := processing.NewContextBuilder(processing.MediaJPEG, processing.KindSet{processing.KindText, processing.KindMetadata}, sink).Build()

	e := New(table, nil, nil)
	err := e.Process(context.Background(), pctx, input)
	require.Error(t, err)

	var names []string
	for out := range outputs {
		if out.Err != nil {
			continue
		}
		names = append(names, out.Artifact.Data().Name)
	}
	assert.Contains(t, names, processing.NameMetadataJSON)
}

func TestEngine_Process_NoApplicableStrategiesClosesOutputImmediately(t *testing.T) {
	input := newInputFile(t, "hello world")

	sink, outputs := processing.NewOutputChannel(10)
	pctx := processing.NewContextBuilder(processing.MediaTextPlain, processing.KindSet{}, sink).Build()

	e := New(dispatch.Table{}, nil, nil)
	require.NoError(t, e.Process(context.Background(), pctx, input))

	count := 0
	for range outputs {
		count++
	}
	assert.Zero(t, count)
}

var _ strategy.Strategy = stubStrategy{}
