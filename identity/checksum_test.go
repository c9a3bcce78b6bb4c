package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingestkit/ingest/processing"
)

// md5OfEmpty is the well-known MD5 digest of the empty byte string, used as
// the expected checksum for every empty-input boundary case (spec.md B1/B2).
const md5OfEmpty = "d41d8cd98f00b204e9800998ecf8427e"

func TestChecksumOfStream_MD5OfPlainBytes(t *testing.T) {
	checksum, err := ChecksumOfStream(strings.NewReader("Hello, world!"), processing.MediaOctetStream)
	require.NoError(t, err)
	assert.Equal(t, "bccf69bd7101c797b298c8b5329b965f", checksum)
}

func TestChecksumOfStream_EmptyAnyMediaType(t *testing.T) {
	checksum, err := ChecksumOfStream(strings.NewReader(""), processing.MediaOctetStream)
	require.NoError(t, err)
	assert.Equal(t, md5OfEmpty, checksum)
}

func TestChecksumOfStream_EmptyRFC822FallsBackToWholePayload(t *testing.T) {
	checksum, err := ChecksumOfStream(strings.NewReader(""), processing.MediaRFC822)
	require.NoError(t, err)
	assert.Equal(t, md5OfEmpty, checksum)
}

func TestChecksumOfStream_RFC822WithoutMessageIDFallsBackToWholePayload(t *testing.T) {
	body := "Subject: no message id here\r\n\r\nbody text\r\n"
	withID, err := ChecksumOfStream(strings.NewReader(body), processing.MediaRFC822)
	require.NoError(t, err)
	asOctet, err := ChecksumOfStream(strings.NewReader(body), processing.MediaOctetStream)
	require.NoError(t, err)
	assert.Equal(t, asOctet, withID)
}

func TestChecksumOfStream_RFC822SharedMessageIDCollidesAcrossDifferentBodies(t *testing.T) {
	const header = "Message-ID: <same-id@example.com>\r\nSubject: one\r\n\r\n"
	a, err := ChecksumOfStream(strings.NewReader(header+"body one\r\n"), processing.MediaRFC822)
	require.NoError(t, err)
	b, err := ChecksumOfStream(strings.NewReader(header+"a completely different body\r\n"), processing.MediaRFC822)
	require.NoError(t, err)
	assert.Equal(t, a, b, "messages sharing a Message-ID must collide regardless of body (spec.md I2)")
}

func TestChecksumOfStream_RFC822DifferentMessageIDsDiffer(t *testing.T) {
	a, err := ChecksumOfStream(strings.NewReader("Message-ID: <a@example.com>\r\n\r\nbody\r\n"), processing.MediaRFC822)
	require.NoError(t, err)
	b, err := ChecksumOfStream(strings.NewReader("Message-ID: <b@example.com>\r\n\r\nbody\r\n"), processing.MediaRFC822)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestChecksumOfStream_IdenticalBytesIdenticalMediaTypeSameChecksum(t *testing.T) {
	a, err := ChecksumOfStream(strings.NewReader("identical content"), processing.MediaJPEG)
	require.NoError(t, err)
	b, err := ChecksumOfStream(strings.NewReader("identical content"), processing.MediaJPEG)
	require.NoError(t, err)
	assert.Equal(t, a, b, "spec.md I1")
}
