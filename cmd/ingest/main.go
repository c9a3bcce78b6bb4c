// Command ingest runs the processing pipeline against one local file,
// writing an archive of every derived and embedded artifact to an output
// path. It is the CLI front-end used to exercise the pipeline end-to-end
// without a Temporal deployment, grounded on cli/src/main.rs's Args/process
// function.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"goa.design/clue/log"

	"github.com/ingestkit/ingest/engine"
	"github.com/ingestkit/ingest/mimetype"
	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/processing/dispatch"
	"github.com/ingestkit/ingest/processing/strategy"
	"github.com/ingestkit/ingest/pump"
	"github.com/ingestkit/ingest/services/archive"
	"github.com/ingestkit/ingest/services/config"
	"github.com/ingestkit/ingest/services/htmltopdf"
	"github.com/ingestkit/ingest/services/magic"
	"github.com/ingestkit/ingest/services/tika"
	"github.com/ingestkit/ingest/services/xdgmime"
	"github.com/ingestkit/ingest/telemetry"
)

func main() {
	var (
		inputF     = flag.String("i", "", "path to the input file (required)")
		outputF    = flag.String("o", "", "path to write the output archive to (required)")
		mimetypeF  = flag.String("m", "", "MIME type of the input file (required)")
		typesF     = flag.String("t", "", "comma-separated derivation kinds to run (Text,Metadata,Pdf,Embedded)")
		allF       = flag.Bool("a", false, "run every derivation kind, overriding -t")
		noRecurseF = flag.Bool("no-recurse", false, "archive embedded artifacts raw, without recursing into them")
		dbgF       = flag.Bool("debug", false, "enable debug-level logging")
	)
	flag.Parse()

	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	if *dbgF {
		ctx = log.Context(ctx, log.WithDebug())
	}

	if err := run(ctx, *inputF, *outputF, *mimetypeF, *typesF, *allF, !*noRecurseF); err != nil {
		log.Error(ctx, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inputPath, outputPath, mediaType, typesFlag string, all bool, recurse bool) error {
	if inputPath == "" || outputPath == "" || mediaType == "" {
		return fmt.Errorf("usage: ingest -i <input> -o <output> -m <mimetype> [-t Text,Metadata,Pdf,Embedded | -a]")
	}
	if info, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file %q not found: %w", inputPath, err)
	} else if info.IsDir() {
		return fmt.Errorf("input path %q is a directory, not a file", inputPath)
	}

	kinds, err := parseKinds(typesFlag, all)
	if err != nil {
		return err
	}

	cfg := config.New()
	tikaClient := tika.New(cfg.TikaHost(), cfg.TikaPort())
	identifier := mimetype.New(xdgmime.New(cfg.XdgMimeBinary()), tikaClient, magic.New())

	logger := telemetry.NewClueLogger()
	tracer := telemetry.NewClueTracer()

	table := dispatch.Table{
		Text:      strategy.DefaultText{Extractor: tikaClient},
		Metadata:  strategy.DefaultMetadata{Extractor: tikaClient},
		Pdf:       strategy.Rfc822PDF{Renderer: htmltopdf.New(cfg.WkhtmltopdfBinary())},
		MboxEmb:   strategy.MboxEmbedded{},
		Rfc822Emb: strategy.Rfc822Embedded{},
		ZipEmb:    strategy.ZipEmbedded{Identifier: identifier},
	}
	eng := engine.New(table, logger, tracer)

	log.Info(ctx, log.KV{K: "msg", V: "processing file"}, log.KV{K: "mimetype", V: mediaType})

	sink, outputs := processing.NewOutputChannel(100)
	pctx := processing.NewContextBuilder(mediaType, kinds, sink).Build()

	archiveFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output archive %q: %w", outputPath, err)
	}
	defer archiveFile.Close()

	p := pump.New(eng, logger, pump.DefaultWorkers, recurse)
	entries := p.Run(ctx, outputs)

	// eng.Process runs alongside the archive-draining loop below, not
	// before it: once the pump's worker pool and the outputs channel fill
	// up, every AddOutput call inside eng.Process blocks until something
	// drains entries, so the two must run concurrently.
	processErrCh := make(chan error, 1)
	go func() {
		processErrCh <- eng.Process(ctx, pctx, inputPath)
	}()

	builder := archive.New(archiveFile)
	for entry := range entries {
		if err := builder.Push(entry.TempFile.Path(), entry.Path); err != nil {
			log.Error(ctx, err, log.KV{K: "path", V: entry.Path})
		}
		entry.TempFile.Close()
	}
	if err := builder.Close(); err != nil {
		return fmt.Errorf("close output archive: %w", err)
	}

	if processErr := <-processErrCh; processErr != nil {
		return fmt.Errorf("process file: %w", processErr)
	}

	log.Info(ctx, log.KV{K: "msg", V: "finished processing file"})
	return nil
}

func parseKinds(typesFlag string, all bool) (processing.KindSet, error) {
	if all {
		return processing.KindSet(processing.AllKinds()), nil
	}
	if typesFlag == "" {
		return nil, nil
	}

	var kinds processing.KindSet
	for _, name := range strings.Split(typesFlag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kind, ok := processing.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown derivation kind %q", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
