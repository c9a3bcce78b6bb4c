// Command ingest-worker runs the Temporal worker hosting IngestWorkflow,
// the durable counterpart to cmd/ingest that downloads its input from
// object storage and uploads the resulting archive back to it instead of
// operating on local paths directly. Grounded on temporal-worker/src/lib.rs
// and configured the same way registry/cmd/registry/main.go is: plain
// environment variables, no flag parsing.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/worker"

	pulseclient "github.com/ingestkit/ingest/features/stream/pulse/clients/pulse"
	"github.com/ingestkit/ingest/engine"
	"github.com/ingestkit/ingest/mimetype"
	"github.com/ingestkit/ingest/processing/dispatch"
	"github.com/ingestkit/ingest/processing/strategy"
	"github.com/ingestkit/ingest/queue"
	"github.com/ingestkit/ingest/services/config"
	"github.com/ingestkit/ingest/services/htmltopdf"
	"github.com/ingestkit/ingest/services/magic"
	"github.com/ingestkit/ingest/services/tika"
	"github.com/ingestkit/ingest/services/xdgmime"
	"github.com/ingestkit/ingest/telemetry"
	"github.com/ingestkit/ingest/workflow/objectstore"
	ingesttemporal "github.com/ingestkit/ingest/workflow/temporal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	hostPort := envOr("TEMPORAL_ADDRESS", "localhost:7233")
	namespace := envOr("TEMPORAL_NAMESPACE", "default")
	workers := envIntOr("PUMP_WORKERS", 1000)

	cfg := config.New()
	tikaClient := tika.New(cfg.TikaHost(), cfg.TikaPort())
	identifier := mimetype.New(xdgmime.New(cfg.XdgMimeBinary()), tikaClient, magic.New())

	table := dispatch.Table{
		Text:      strategy.DefaultText{Extractor: tikaClient},
		Metadata:  strategy.DefaultMetadata{Extractor: tikaClient},
		Pdf:       strategy.Rfc822PDF{Renderer: htmltopdf.New(cfg.WkhtmltopdfBinary())},
		MboxEmb:   strategy.MboxEmbedded{},
		Rfc822Emb: strategy.Rfc822Embedded{},
		ZipEmb:    strategy.ZipEmbedded{Identifier: identifier},
	}
	eng := engine.New(table, telemetry.NewClueLogger(), telemetry.NewClueTracer())

	store, err := objectstore.New(ctx)
	if err != nil {
		return fmt.Errorf("create object store client: %w", err)
	}

	c, err := ingesttemporal.NewClient(hostPort, namespace)
	if err != nil {
		return err
	}
	defer c.Close()

	batcher, err := newQueueBatcher()
	if err != nil {
		return err
	}

	activities := &ingesttemporal.Activities{
		Store:   store,
		Engine:  eng,
		Logger:  telemetry.NewClueLogger(),
		Workers: workers,
		Queue:   batcher,
	}

	w := ingesttemporal.NewWorker(c, activities)
	log.Printf("starting ingest worker on task queue %q (temporal=%s namespace=%s)", ingesttemporal.TaskQueue, hostPort, namespace)
	return w.Run(worker.InterruptCh())
}

// newQueueBatcher builds the optional Pulse-backed archive-entry queue.
// Deployments that only want the uploaded archive, not a live manifest
// stream, run with PULSE_STREAM unset and get a nil *queue.Batcher back.
func newQueueBatcher() (*queue.Batcher, error) {
	streamName := os.Getenv("PULSE_STREAM")
	if streamName == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: envOr("REDIS_ADDR", "localhost:6379")})
	client, err := pulseclient.New(pulseclient.Options{Redis: rdb})
	if err != nil {
		return nil, fmt.Errorf("create pulse client: %w", err)
	}

	batcher, err := queue.NewBatcher(client, streamName, queue.DefaultBatchSize)
	if err != nil {
		return nil, fmt.Errorf("open archive entry stream %q: %w", streamName, err)
	}
	return batcher, nil
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOr(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
