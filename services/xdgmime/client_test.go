package xdgmime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_QueryFiletypeTrimsStdout(t *testing.T) {
	// "echo" stands in for xdg-mime here: QueryFiletype's own job is
	// building the "query filetype <path>" argument list and trimming
	// whatever the binary prints, not xdg-mime's own detection logic.
	c := New("echo")

	mt, err := c.QueryFiletype(context.Background(), "/tmp/some/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "query filetype /tmp/some/file.txt", mt)
}

func TestClient_QueryFiletypeWrapsBinaryFailure(t *testing.T) {
	c := New("ingest-nonexistent-binary-xyz")

	_, err := c.QueryFiletype(context.Background(), "/tmp/some/file.txt")
	assert.Error(t, err)
}
