package temporal

import (
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// NewClient dials the Temporal frontend at hostPort, grounded on the
// original worker's TEMPORAL_ADDRESS (host/port from env, default
// localhost:7233).
func NewClient(hostPort, namespace string) (client.Client, error) {
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	c, err := client.Dial(client.Options{HostPort: hostPort, Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("dial temporal at %s: %w", hostPort, err)
	}
	return c, nil
}

// NewWorker builds a worker polling TaskQueue, with IngestWorkflow and
// every Activities method registered against it. Callers start it with
// w.Run(worker.InterruptCh()).
func NewWorker(c client.Client, activities *Activities) worker.Worker {
	w := worker.New(c, TaskQueue, worker.Options{})

	w.RegisterWorkflow(IngestWorkflow)
	w.RegisterActivityWithOptions(activities.CreateWorkspace, activity.RegisterOptions{Name: ActivityCreateWorkspace})
	w.RegisterActivityWithOptions(activities.Download, activity.RegisterOptions{Name: ActivityDownload})
	w.RegisterActivityWithOptions(activities.ProcessFile, activity.RegisterOptions{Name: ActivityProcessFile})
	w.RegisterActivityWithOptions(activities.Upload, activity.RegisterOptions{Name: ActivityUpload})
	w.RegisterActivityWithOptions(activities.RemoveWorkspace, activity.RegisterOptions{Name: ActivityRemoveWorkspace})

	return w
}
