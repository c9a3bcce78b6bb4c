package temporal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ingestkit/ingest/engine"
	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/pump"
	"github.com/ingestkit/ingest/queue"
	"github.com/ingestkit/ingest/services/archive"
	"github.com/ingestkit/ingest/telemetry"
	"github.com/ingestkit/ingest/workflow/objectstore"
)

// Activity names, registered with the worker and referenced by the
// workflow. Named the way the original worker names its activities
// ("CreateWorkspace", "Download", "Upload", "RemoveWorkspace"); ProcessFile
// takes the place of "ProcessRustyFile".
const (
	ActivityCreateWorkspace = "CreateWorkspace"
	ActivityDownload        = "Download"
	ActivityProcessFile     = "ProcessFile"
	ActivityUpload          = "Upload"
	ActivityRemoveWorkspace = "RemoveWorkspace"
)

// CreateWorkspaceInput is the (empty) input to the CreateWorkspace activity.
type CreateWorkspaceInput struct{}

// CreateWorkspaceOutput carries the local paths the rest of the workflow
// operates on.
type CreateWorkspaceOutput struct {
	InputPath   string
	ArchivePath string
}

// DownloadInput is the input to the Download activity.
type DownloadInput struct {
	URI  string
	Path string
}

// UploadInput is the input to the Upload activity.
type UploadInput struct {
	Path string
	URI  string
}

// RemoveWorkspaceInput is the input to the RemoveWorkspace activity.
type RemoveWorkspaceInput struct {
	Paths []string
}

// ProcessFileInput is the input to the ProcessFile activity.
type ProcessFileInput struct {
	InputPath   string
	ArchivePath string
	MediaType   string
	Kinds       []string
	Recurse     bool
}

// ProcessFileOutput is the (empty) output of the ProcessFile activity.
type ProcessFileOutput struct{}

// Activities bundles the collaborators every activity needs: an object
// store client for Download/Upload, and a processing engine for
// ProcessFile. Grounded on temporal-worker/src/activities/*.rs, each of
// which reaches into package-level lazy statics for the same collaborators
// (s3_client, processor); here they are constructor-injected instead, per
// the teacher's rule against global singletons.
type Activities struct {
	Store   *objectstore.Client
	Engine  *engine.Engine
	Logger  telemetry.Logger
	Workers int

	// Queue, if set, publishes one queue.Entry per archived artifact so a
	// downstream consumer can react to the archive's contents without
	// waiting on the whole workflow to finish. Deployments that only care
	// about the final uploaded archive can leave this nil.
	Queue *queue.Batcher
}

// CreateWorkspace allocates a scratch directory for one workflow run and
// returns the local paths subsequent activities read from and write to.
func (a *Activities) CreateWorkspace(_ context.Context, _ CreateWorkspaceInput) (CreateWorkspaceOutput, error) {
	dir, err := os.MkdirTemp("", "ingest-workspace-*")
	if err != nil {
		return CreateWorkspaceOutput{}, fmt.Errorf("create workspace directory: %w", err)
	}
	return CreateWorkspaceOutput{
		InputPath:   filepath.Join(dir, "input"),
		ArchivePath: filepath.Join(dir, "archive.zip"),
	}, nil
}

// Download fetches the workflow's input file from object storage into the
// workspace.
func (a *Activities) Download(ctx context.Context, input DownloadInput) error {
	return a.Store.Download(ctx, input.URI, input.Path)
}

// Upload writes the finished archive back to object storage.
func (a *Activities) Upload(ctx context.Context, input UploadInput) error {
	return a.Store.Upload(ctx, input.Path, input.URI)
}

// RemoveWorkspace deletes every workspace path, refusing to touch anything
// outside the system temp directory - the same guard the original
// activity and its zip.rs sibling apply before recursing a filesystem walk
// or an rm.
func (a *Activities) RemoveWorkspace(_ context.Context, input RemoveWorkspaceInput) error {
	var firstErr error
	for _, p := range input.Paths {
		if !strings.HasPrefix(p, os.TempDir()) {
			continue
		}
		if err := os.RemoveAll(p); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove workspace path %q: %w", p, err)
		}
	}
	return firstErr
}

// ProcessFile runs the processing engine and output pump against the
// downloaded input, building the workspace's archive from every artifact
// the pump forwards.
func (a *Activities) ProcessFile(ctx context.Context, input ProcessFileInput) (ProcessFileOutput, error) {
	kinds := make(processing.KindSet, 0, len(input.Kinds))
	for _, k := range input.Kinds {
		kind, ok := processing.ParseKind(k)
		if !ok {
			return ProcessFileOutput{}, fmt.Errorf("unknown derivation kind %q", k)
		}
		kinds = append(kinds, kind)
	}

	sink, outputs := processing.NewOutputChannel(100)
	pctx := processing.NewContextBuilder(input.MediaType, kinds, sink).Build()

	archiveFile, err := os.Create(input.ArchivePath)
	if err != nil {
		return ProcessFileOutput{}, fmt.Errorf("create archive file: %w", err)
	}
	defer archiveFile.Close()

	p := pump.New(a.Engine, a.Logger, a.Workers, input.Recurse)
	entries := p.Run(ctx, outputs)

	// a.Engine.Process runs alongside the archive-draining loop below, not
	// before it: once the pump's worker pool and the outputs channel fill
	// up, every AddOutput call inside Process blocks until something
	// drains entries, so the two must run concurrently.
	processErrCh := make(chan error, 1)
	go func() {
		processErrCh <- a.Engine.Process(ctx, pctx, input.InputPath)
	}()

	builder := archive.New(archiveFile)
	for entry := range entries {
		if err := builder.Push(entry.TempFile.Path(), entry.Path); err != nil {
			a.Logger.Warn(ctx, "failed to add archive entry", "path", entry.Path, "error", err)
		}
		if a.Queue != nil {
			if err := a.Queue.Push(ctx, queue.Entry{Path: entry.Path}); err != nil {
				a.Logger.Warn(ctx, "failed to publish archive entry", "path", entry.Path, "error", err)
			}
		}
		entry.TempFile.Close()
	}
	if err := builder.Close(); err != nil {
		return ProcessFileOutput{}, fmt.Errorf("close archive: %w", err)
	}
	if a.Queue != nil {
		if err := a.Queue.Flush(ctx); err != nil {
			a.Logger.Warn(ctx, "failed to flush archive entry queue", "error", err)
		}
	}

	if processErr := <-processErrCh; processErr != nil {
		return ProcessFileOutput{}, fmt.Errorf("process file: %w", processErr)
	}
	return ProcessFileOutput{}, nil
}
