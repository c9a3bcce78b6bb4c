package strategy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingestkit/ingest/processing"
)

func writeTempMbox(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.mbox")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMboxEmbedded_SplitsTwoMessages(t *testing.T) {
	const mbox = "From mailer@example.com Mon Jan  1 00:00:00 2001\r\n" +
		"Message-ID: <one@example.com>\r\n\r\nfirst body\r\n\r\n" +
		"From mailer@example.com Mon Jan  1 00:01:00 2001\r\n" +
		"Message-ID: <two@example.com>\r\n\r\nsecond body\r\n"
	path := writeTempMbox(t, mbox)

	sink, outputs := processing.NewOutputChannel(10)
	pctx := processing.NewContextBuilder(processing.MediaMbox, processing.KindSet{processing.KindEmbedded}, sink).Build()

	require.NoError(t, MboxEmbedded{}.Derive(context.Background(), pctx, path, ""))
	sink.Release()

	var results []processing.Output
	for out := range outputs {
		results = append(results, out)
	}

	require.Len(t, results, 2)
	for _, out := range results {
		require.NoError(t, out.Err)
		data := out.Artifact.Data()
		assert.Equal(t, "mbox-message.eml", data.Name)
		assert.Equal(t, processing.MediaRFC822, data.MediaType)
	}
	assert.NotEqual(t, results[0].Artifact.Data().Checksum, results[1].Artifact.Data().Checksum)
}

func TestMboxEmbedded_EmptyFileProducesNoMessages(t *testing.T) {
	path := writeTempMbox(t, "")

	sink, outputs := processing.NewOutputChannel(10)
	pctx := processing.NewContextBuilder(processing.MediaMbox, processing.KindSet{processing.KindEmbedded}, sink).Build()

	require.NoError(t, MboxEmbedded{}.Derive(context.Background(), pctx, path, ""))
	sink.Release()

	count := 0
	for range outputs {
		count++
	}
	assert.Zero(t, count)
}
