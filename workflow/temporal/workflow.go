// Package temporal wires the processing engine and output pump into a
// Temporal workflow, grounded on temporal-worker/src/lib.rs's end-to-end
// download/process/upload/cleanup sequence. Unlike the teacher's generic
// runtime/agent/engine/temporal adapter - built to host an arbitrary,
// pluggable set of workflow/activity definitions behind one interface -
// this package registers one concrete workflow and its five activities
// directly against the Temporal SDK, since there is exactly one workflow
// to host.
package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"
)

// TaskQueue is the default task queue the worker polls and workflow
// executions are started against.
const TaskQueue = "ingest"

// IngestWorkflowInput starts one ingest run: download the object at
// InputURI, run it through the processing engine requesting Kinds (and
// recursing into embedded artifacts when Recurse is set), and upload the
// resulting archive to OutputURI.
type IngestWorkflowInput struct {
	InputURI  string
	OutputURI string
	MediaType string
	Kinds     []string
	Recurse   bool
}

// IngestWorkflowOutput reports where the finished archive was uploaded.
type IngestWorkflowOutput struct {
	ArchiveURI string
}

// IngestWorkflow is the ingest pipeline's only workflow definition. It
// never recurses itself - recursion into embedded artifacts happens inside
// the ProcessFile activity's own pump - so there is no need to model the
// pipeline as a child-workflow-per-file tree the way some Temporal designs
// would; this matches the original worker, which runs the whole recursive
// descent inside one activity invocation.
func IngestWorkflow(ctx workflow.Context, input IngestWorkflowInput) (IngestWorkflowOutput, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var workspace CreateWorkspaceOutput
	if err := workflow.ExecuteActivity(ctx, ActivityCreateWorkspace, CreateWorkspaceInput{}).Get(ctx, &workspace); err != nil {
		return IngestWorkflowOutput{}, fmt.Errorf("create workspace: %w", err)
	}

	cleanup := func() {
		cleanupCtx, cancel := workflow.NewDisconnectedContext(ctx)
		defer cancel()
		cleanupCtx = workflow.WithActivityOptions(cleanupCtx, workflow.ActivityOptions{StartToCloseTimeout: 5 * time.Minute})
		_ = workflow.ExecuteActivity(cleanupCtx, ActivityRemoveWorkspace, RemoveWorkspaceInput{
			Paths: []string{workspace.InputPath, workspace.ArchivePath},
		}).Get(cleanupCtx, nil)
	}
	defer cleanup()

	if err := workflow.ExecuteActivity(ctx, ActivityDownload, DownloadInput{
		URI:  input.InputURI,
		Path: workspace.InputPath,
	}).Get(ctx, nil); err != nil {
		return IngestWorkflowOutput{}, fmt.Errorf("download input: %w", err)
	}

	if err := workflow.ExecuteActivity(ctx, ActivityProcessFile, ProcessFileInput{
		InputPath:   workspace.InputPath,
		ArchivePath: workspace.ArchivePath,
		MediaType:   input.MediaType,
		Kinds:       input.Kinds,
		Recurse:     input.Recurse,
	}).Get(ctx, nil); err != nil {
		return IngestWorkflowOutput{}, fmt.Errorf("process file: %w", err)
	}

	if err := workflow.ExecuteActivity(ctx, ActivityUpload, UploadInput{
		Path: workspace.ArchivePath,
		URI:  input.OutputURI,
	}).Get(ctx, nil); err != nil {
		return IngestWorkflowOutput{}, fmt.Errorf("upload archive: %w", err)
	}

	return IngestWorkflowOutput{ArchiveURI: input.OutputURI}, nil
}
