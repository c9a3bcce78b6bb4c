package temporal

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingestkit/ingest/engine"
	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/processing/dispatch"
	"github.com/ingestkit/ingest/processing/strategy"
)

func newTestActivities(t *testing.T) *Activities {
	t.Helper()
	return &Activities{
		Engine:  engine.New(dispatch.Table{}, nil, nil),
		Workers: 4,
	}
}

func TestActivities_CreateWorkspaceReturnsDistinctPathsUnderOneDirectory(t *testing.T) {
	a := newTestActivities(t)

	out, err := a.CreateWorkspace(context.Background(), CreateWorkspaceInput{})
	require.NoError(t, err)
	defer os.RemoveAll(filepath.Dir(out.InputPath))

	assert.NotEqual(t, out.InputPath, out.ArchivePath)
	assert.Equal(t, filepath.Dir(out.InputPath), filepath.Dir(out.ArchivePath))

	info, err := os.Stat(filepath.Dir(out.InputPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestActivities_RemoveWorkspaceRefusesPathsOutsideTempDir(t *testing.T) {
	a := newTestActivities(t)

	dir, err := os.MkdirTemp("", "ingest-activities-test-*")
	require.NoError(t, err)
	inside := filepath.Join(dir, "inside.txt")
	require.NoError(t, os.WriteFile(inside, []byte("x"), 0o600))

	err = a.RemoveWorkspace(context.Background(), RemoveWorkspaceInput{
		Paths: []string{inside, "/etc/passwd"},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(inside)
	assert.True(t, os.IsNotExist(statErr), "path under the temp dir should have been removed")

	_, statErr = os.Stat("/etc/passwd")
	assert.NoError(t, statErr, "path outside the temp dir must never be touched")
}

func TestActivities_ProcessFileRejectsUnknownKind(t *testing.T) {
	a := newTestActivities(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	require.NoError(t, os.WriteFile(input, []byte("hello"), 0o600))

	_, err := a.ProcessFile(context.Background(), ProcessFileInput{
		InputPath:   input,
		ArchivePath: filepath.Join(dir, "archive.zip"),
		MediaType:   "text/plain",
		Kinds:       []string{"not-a-kind"},
	})
	assert.Error(t, err)
}

func TestActivities_ProcessFileWithNoApplicableStrategiesProducesEmptyArchive(t *testing.T) {
	a := newTestActivities(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	require.NoError(t, os.WriteFile(input, []byte("hello"), 0o600))
	archivePath := filepath.Join(dir, "archive.zip")

	_, err := a.ProcessFile(context.Background(), ProcessFileInput{
		InputPath:   input,
		ArchivePath: archivePath,
		MediaType:   "text/plain",
		Kinds:       []string{"Text"},
	})
	require.NoError(t, err)

	info, err := os.Stat(archivePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "even an empty zip has a central directory footer")
}

// TestActivities_ProcessFileDoesNotDeadlockWithManyArtifacts is a regression
// test for ProcessFile sequencing a.Engine.Process before the archive loop
// drains entries: with enough artifacts in flight, the pump's worker pool
// and entries buffer fill up, every strategy's AddOutput call blocks, and
// the whole activity hangs forever unless a.Engine.Process runs
// concurrently with the archive-draining loop. A small pump worker count
// keeps the artifact count needed to prove this manageable.
func TestActivities_ProcessFileDoesNotDeadlockWithManyArtifacts(t *testing.T) {
	const messageCount = 500

	var mbox strings.Builder
	for i := 0; i < messageCount; i++ {
		fmt.Fprintf(&mbox, "From mailer@example.com Mon Jan  1 00:00:00 2001\r\n"+
			"Message-ID: <msg-%d@example.com>\r\n\r\nbody %d\r\n\r\n", i, i)
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "input.mbox")
	require.NoError(t, os.WriteFile(input, []byte(mbox.String()), 0o600))
	archivePath := filepath.Join(dir, "archive.zip")

	a := &Activities{
		Engine:  engine.New(dispatch.Table{MboxEmb: strategy.MboxEmbedded{}}, nil, nil),
		Workers: 4,
	}

	done := make(chan error, 1)
	go func() {
		_, err := a.ProcessFile(context.Background(), ProcessFileInput{
			InputPath:   input,
			ArchivePath: archivePath,
			MediaType:   processing.MediaMbox,
			Kinds:       []string{"Embedded"},
			Recurse:     false,
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("ProcessFile deadlocked: a.Engine.Process must run concurrently with the archive-draining loop")
	}

	r, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer r.Close()
	assert.Len(t, r.File, messageCount)
}
