package htmltopdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes a shell script that ignores its arguments, copies
// stdin to stdout, and exits with exitCode, standing in for wkhtmltopdf.
func fakeBinary(t *testing.T, exitCode int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-wkhtmltopdf.sh")
	script := fmt.Sprintf("#!/bin/sh\ncat\nexit %d\n", exitCode)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700))
	return path
}

func TestClient_RenderSucceedsOnExitZero(t *testing.T) {
	c := New(fakeBinary(t, 0))

	var out strings.Builder
	err := c.Render(context.Background(), strings.NewReader("<html></html>"), &out)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", out.String())
}

func TestClient_RenderToleratesExitCodeOne(t *testing.T) {
	c := New(fakeBinary(t, 1))

	var out strings.Builder
	err := c.Render(context.Background(), strings.NewReader("<html></html>"), &out)
	assert.NoError(t, err)
}

func TestClient_RenderFailsOnOtherNonZeroExit(t *testing.T) {
	c := New(fakeBinary(t, 2))

	var out strings.Builder
	err := c.Render(context.Background(), strings.NewReader("<html></html>"), &out)
	assert.Error(t, err)
}
