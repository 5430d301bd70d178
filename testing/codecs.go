// Package testing holds helpers shared by the codec tests.
package testing

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/dargueta/squish"
	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// RandomBytes returns `size` bytes of random data. It is guaranteed to either
// return a valid slice or fail the test and abort.
func RandomBytes(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)
	return data
}

// CompressToStream compresses `original` with `alg` and returns a seekable
// stream positioned at the start of the compressed data.
//
//   - Writes to the stream do not affect `original`.
//   - The stream's size is fixed to the size of the compressed data.
func CompressToStream(
	t *testing.T, alg squish.Algorithm, original []byte,
) io.ReadWriteSeeker {
	compressed := bytes.Buffer{}
	n, err := alg.Compress(bytes.NewReader(original), &compressed)
	require.NoErrorf(t, err, "%s: unexpected error while compressing", alg.Name)
	require.EqualValuesf(
		t,
		compressed.Len(),
		n,
		"%s: compressor reported wrong number of bytes written",
		alg.Name,
	)
	return bytesextra.NewReadWriteSeeker(compressed.Bytes())
}

// RoundTrip compresses and then decompresses `original`, failing the test if
// the result differs in any way. It returns the compressed data.
func RoundTrip(t *testing.T, alg squish.Algorithm, original []byte) []byte {
	stream := CompressToStream(t, alg, original)
	compressed, err := io.ReadAll(stream)
	require.NoError(t, err)
	t.Logf("%s: compressed %d -> %d", alg.Name, len(original), len(compressed))

	_, err = stream.Seek(0, io.SeekStart)
	require.NoError(t, err)

	// The output buffer is exactly the expected size, so a decompressor that
	// produces too much data fails on the write.
	decompressed := make([]byte, len(original))
	writer := bytewriter.New(decompressed)

	n, err := alg.Decompress(stream, writer)
	require.NoErrorf(t, err, "%s: unexpected error while decompressing", alg.Name)
	assert.EqualValuesf(t, len(original), n, "%s: decompressed data has wrong size", alg.Name)
	assert.Truef(
		t,
		bytes.Equal(original, decompressed),
		"%s: decompressed data doesn't match original data",
		alg.Name,
	)
	return compressed
}

// RoundTripDataSets returns inputs every codec must handle.
func RoundTripDataSets(t *testing.T) map[string][]byte {
	alternating := make([]byte, 4099)
	for i := range alternating {
		alternating[i] = byte(i % 2)
	}

	return map[string][]byte{
		"empty":        {},
		"single byte":  {0x90},
		"homogenous":   bytes.Repeat([]byte{100}, 9174),
		"nulls":        make([]byte, 571),
		"heterogenous": RandomBytes(t, 1852),
		"alternating":  alternating,
		"text":         []byte("aaaabbbbccccddddeeeeffff                                      hello world"),
		"marker bytes": bytes.Repeat([]byte{0x90, 0x90, 0x90, 0x00, 0x90}, 300),
	}
}
