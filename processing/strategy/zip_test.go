package strategy

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingestkit/ingest/processing"
)

func writeTempZip(t *testing.T, files map[string]string, dirs []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, dir := range dirs {
		_, err := w.Create(dir + "/")
		require.NoError(t, err)
	}
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

type stubZipIdentifier struct{}

func (stubZipIdentifier) Identify(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func TestZipEmbedded_DirectoryOnlyArchiveProducesNoArtifacts(t *testing.T) {
	path := writeTempZip(t, nil, []string{"empty-dir"})

	sink, outputs := processing.NewOutputChannel(10)
	pctx := processing.NewContextBuilder(processing.MediaZip, processing.KindSet{processing.KindEmbedded}, sink).Build()

	require.NoError(t, ZipEmbedded{Identifier: stubZipIdentifier{}}.Derive(context.Background(), pctx, path, ""))
	sink.Release()

	count := 0
	for range outputs {
		count++
	}
	assert.Zero(t, count, "spec.md B3")
}

func TestZipEmbedded_EmitsOneArtifactPerFileEntry(t *testing.T) {
	path := writeTempZip(t, map[string]string{"a.txt": "hello", "b.txt": "world"}, nil)

	sink, outputs := processing.NewOutputChannel(10)
	pctx := processing.NewContextBuilder(processing.MediaZip, processing.KindSet{processing.KindEmbedded}, sink).Build()

	require.NoError(t, ZipEmbedded{Identifier: stubZipIdentifier{}}.Derive(context.Background(), pctx, path, ""))
	sink.Release()

	var names []string
	for out := range outputs {
		require.NoError(t, out.Err)
		names = append(names, out.Artifact.Data().Name)
	}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, names)
}
