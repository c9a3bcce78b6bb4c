package magic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DetectFileStripsParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text content\n"), 0o600))

	mt, err := New().DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mt)
}

func TestClient_DetectFileSniffsBinaryContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bin")
	// PNG magic bytes.
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, 0o600))

	mt, err := New().DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)
}

func TestClient_DetectFileErrorsOnMissingFile(t *testing.T) {
	_, err := New().DetectFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
