package mimetype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingestkit/ingest/processing"
)

type stubXdgMime struct {
	mediaType string
	err       error
}

func (s stubXdgMime) QueryFiletype(context.Context, string) (string, error) {
	return s.mediaType, s.err
}

type stubTika struct {
	mediaType string
	err       error
}

func (s stubTika) Detect(context.Context, string) (string, error) {
	return s.mediaType, s.err
}

type stubSniffer struct {
	mediaType string
	err       error
}

func (s stubSniffer) DetectFile(string) (string, error) {
	return s.mediaType, s.err
}

func TestIdentify_XdgMimeWinsWhenConfident(t *testing.T) {
	id := New(
		stubXdgMime{mediaType: processing.MediaMbox},
		stubTika{mediaType: "should not be reached"},
		stubSniffer{mediaType: "should not be reached"},
	)
	mt, ok, err := id.Identify(context.Background(), "whatever")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, processing.MediaMbox, mt)
}

func TestIdentify_FallsThroughToTikaWhenXdgMimeUnconfident(t *testing.T) {
	id := New(
		stubXdgMime{mediaType: processing.MediaOctetStream},
		stubTika{mediaType: processing.MediaRFC822},
		stubSniffer{mediaType: "should not be reached"},
	)
	mt, ok, err := id.Identify(context.Background(), "whatever")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, processing.MediaRFC822, mt)
}

func TestIdentify_FallsThroughToSnifferWhenEarlierStepsUnconfident(t *testing.T) {
	id := New(
		stubXdgMime{mediaType: processing.MediaTextPlain},
		stubTika{mediaType: processing.MediaOctetStream},
		stubSniffer{mediaType: processing.MediaJPEG},
	)
	mt, ok, err := id.Identify(context.Background(), "whatever")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, processing.MediaJPEG, mt)
}

func TestIdentify_NoneConfidentReturnsNotOK(t *testing.T) {
	id := New(
		stubXdgMime{mediaType: processing.MediaOctetStream},
		stubTika{mediaType: processing.MediaOctetStream},
		stubSniffer{mediaType: processing.MediaOctetStream},
	)
	_, ok, err := id.Identify(context.Background(), "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentify_SkipsNilCollaborators(t *testing.T) {
	id := New(nil, nil, stubSniffer{mediaType: processing.MediaJPEG})
	mt, ok, err := id.Identify(context.Background(), "whatever")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, processing.MediaJPEG, mt)
}

func TestIdentify_PropagatesCollaboratorError(t *testing.T) {
	id := New(stubXdgMime{err: assert.AnError}, nil, nil)
	_, _, err := id.Identify(context.Background(), "whatever")
	assert.Error(t, err)
}
