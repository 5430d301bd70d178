package runlength_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/dargueta/squish"
	rl "github.com/dargueta/squish/schemes/runlength"
	squishtest "github.com/dargueta/squish/testing"
	"github.com/noxer/bytewriter"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CompressionTestCase struct {
	Input          []byte
	ExpectedOutput []byte
	Name           string
}

func TestCompress__Basic(t *testing.T) {
	tests := []CompressionTestCase{
		{[]byte{}, []byte{}, "empty"},
		{[]byte("ab"), []byte{0x00, 0x02, 'a', 'b'}, "two distinct bytes"},
		{[]byte{7}, []byte{0x00, 0x01, 7}, "single byte"},
		{
			[]byte("aaaabbbbccccddddeeeeffff"),
			[]byte{
				0x80, 0x18,
				4, 'a', 4, 'b', 4, 'c', 4, 'd', 4, 'e', 4, 'f',
			},
			"six runs",
		},
		// Encoded size plus header equals the block size, so literal wins.
		{[]byte{5, 5, 5, 5}, []byte{0x00, 0x04, 5, 5, 5, 5}, "tie is literal"},
		{[]byte{5, 5, 5, 5, 5}, []byte{0x80, 0x05, 5, 5}, "smallest run"},
		{
			bytes.Repeat([]byte{9}, 300),
			[]byte{0x81, 0x2c, 255, 9, 45, 9},
			"run split across units",
		},
		{
			[]byte{0, 1, 2, 3, 4, 5, 6, 7},
			[]byte{0x00, 0x08, 0, 1, 2, 3, 4, 5, 6, 7},
			"no runs",
		},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				outputBuffer := make([]byte, len(test.ExpectedOutput)*2)
				outputWriter := bytewriter.New(outputBuffer)

				n, err := rl.NewCompressor(bytes.NewReader(test.Input), outputWriter).Compress()
				require.NoError(t, err)
				assert.EqualValues(t, len(test.ExpectedOutput), n, "bytes written is wrong")
				assert.Equal(t, test.ExpectedOutput, outputBuffer[:n], "output data is wrong")
			},
		)
	}
}

func TestRoundTrip__DataSets(t *testing.T) {
	alg := rl.Algorithm()
	for name, data := range squishtest.RoundTripDataSets(t) {
		t.Run(
			name,
			func(t *testing.T) {
				squishtest.RoundTrip(t, alg, data)
			},
		)
	}
}

func TestRoundTrip__BlockBoundaries(t *testing.T) {
	alg := rl.Algorithm()
	sizes := map[string]int{
		"max minus one": rl.MaxRunLength - 1,
		"max":           rl.MaxRunLength,
		"max plus one":  rl.MaxRunLength + 1,
		"two blocks":    2 * rl.MaxRunLength,
	}

	for name, size := range sizes {
		t.Run(
			name+"/homogenous",
			func(t *testing.T) {
				squishtest.RoundTrip(t, alg, bytes.Repeat([]byte{0xaa}, size))
			},
		)
		t.Run(
			name+"/random",
			func(t *testing.T) {
				squishtest.RoundTrip(t, alg, squishtest.RandomBytes(t, size))
			},
		)
	}
}

func TestCompress__SplitsAtMaxRunLength(t *testing.T) {
	original := bytes.Repeat([]byte{'x'}, rl.MaxRunLength+1)
	compressed, err := rl.CompressBytes(original)
	require.NoError(t, err)

	frameMap, err := rl.Inspect(bytes.NewReader(compressed))
	require.NoError(t, err)
	require.Len(t, frameMap.Frames, 2)

	// 128 units of 255 plus one of 127 cover the first block.
	assert.Equal(t, rl.Header{IsRun: true, Length: rl.MaxRunLength}, frameMap.Frames[0].Header)
	assert.Equal(t, 129, frameMap.Frames[0].Units)
	assert.Equal(t, rl.Header{IsRun: false, Length: 1}, frameMap.Frames[1].Header)
	assert.EqualValues(t, len(original), frameMap.OriginalSize)
	assert.EqualValues(t, len(compressed), frameMap.CompressedSize)
	assert.Len(t, compressed, 2+258+3)
}

func TestCompress__Compressibility(t *testing.T) {
	homogenous, err := rl.CompressBytes(bytes.Repeat([]byte{0}, 1000))
	require.NoError(t, err)
	frameMap, err := rl.Inspect(bytes.NewReader(homogenous))
	require.NoError(t, err)
	require.Len(t, frameMap.Frames, 1)
	assert.True(t, frameMap.IsRun(0), "repeated byte should be run-encoded")

	distinct := make([]byte, 256)
	for i := range distinct {
		distinct[i] = byte(i)
	}
	literal, err := rl.CompressBytes(distinct)
	require.NoError(t, err)
	frameMap, err = rl.Inspect(bytes.NewReader(literal))
	require.NoError(t, err)
	require.Len(t, frameMap.Frames, 1)
	assert.False(t, frameMap.IsRun(0), "block without runs should be literal")
	assert.Equal(t, 0, frameMap.RunFrameCount())
}

func TestCompress__OverflowFallsBackToLiteral(t *testing.T) {
	// Alternating bytes would need 40000 bytes of units.
	original := make([]byte, 20000)
	for i := range original {
		original[i] = byte(i % 2)
	}

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	compressed, err := rl.CompressBytes(original, rl.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x4e, 0x20}, compressed[:2], "expected a literal frame of 20000 bytes")
	assert.Equal(t, original, compressed[2:])

	overflowLogged := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.DebugLevel && entry.Data["block"] == 0 &&
			bytes.Contains([]byte(entry.Message), []byte("falling back to literal")) {
			overflowLogged = true
		}
	}
	assert.True(t, overflowLogged, "overflow wasn't logged")
}

func TestCompress__AllFrameLengthsInRange(t *testing.T) {
	original := append(
		squishtest.RandomBytes(t, 50000),
		bytes.Repeat([]byte{3}, 70000)...,
	)
	compressed, err := rl.CompressBytes(original)
	require.NoError(t, err)

	frameMap, err := rl.Inspect(bytes.NewReader(compressed))
	require.NoError(t, err)
	for _, info := range frameMap.Frames {
		assert.GreaterOrEqual(t, info.Header.Length, 0)
		assert.LessOrEqual(t, info.Header.Length, rl.MaxRunLength)
		if !info.Header.IsRun {
			assert.Equal(t, info.Header.Length, info.PayloadSize)
		}
	}
	assert.EqualValues(t, len(original), frameMap.OriginalSize)
}

func TestCompress__BlockSizeOption(t *testing.T) {
	compressed, err := rl.CompressBytes([]byte("aaaaaaaaab"), rl.WithBlockSize(5))
	require.NoError(t, err)
	assert.Equal(
		t,
		[]byte{0x80, 0x05, 5, 'a', 0x00, 0x05, 'a', 'a', 'a', 'a', 'b'},
		compressed,
	)

	decompressed, err := rl.DecompressBytes(compressed)
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaaab", string(decompressed))

	_, err = rl.CompressBytes([]byte("a"), rl.WithBlockSize(0))
	assert.ErrorIs(t, err, squish.ErrInvalidArgument)
	_, err = rl.CompressBytes([]byte("a"), rl.WithBlockSize(rl.MaxRunLength+1))
	assert.ErrorIs(t, err, squish.ErrInvalidArgument)
}

func TestCompress__LogsEveryBlock(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := rl.CompressBytes([]byte("aaaaaaaaab"), rl.WithBlockSize(5), rl.WithLogger(logger))
	require.NoError(t, err)

	frames := []string{}
	for _, entry := range hook.AllEntries() {
		if entry.Message == "writing frame" {
			frames = append(frames, entry.Data["frame"].(string))
		}
	}
	assert.Equal(t, []string{"run(5)", "literal(5)"}, frames)
}

func TestDecompress__Empty(t *testing.T) {
	decompressed, err := rl.DecompressBytes([]byte{})
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestDecompress__EmptyFramesAreAllowed(t *testing.T) {
	decompressed, err := rl.DecompressBytes([]byte{0x00, 0x00, 0x80, 0x00, 0x00, 0x01, 'z'})
	require.NoError(t, err)
	assert.Equal(t, []byte("z"), decompressed)
}

type MalformedTestCase struct {
	Input     []byte
	Truncated bool
	Name      string
}

func TestDecompress__Malformed(t *testing.T) {
	tests := []MalformedTestCase{
		{[]byte{0x80}, true, "truncated header"},
		{[]byte{0x00, 0x02, 'a', 'b', 0x00}, true, "truncated second header"},
		{[]byte{0x00, 0x05, 'a'}, true, "short literal"},
		{[]byte{0x00, 0x05}, true, "missing literal"},
		{[]byte{0x80, 0x04, 0x02, 'a'}, true, "missing unit"},
		{[]byte{0x80, 0x02, 0x02}, true, "half a unit"},
		{[]byte{0x80, 0x02, 0x00, 'a'}, false, "zero repeat count"},
		{[]byte{0x80, 0x02, 0x03, 'a'}, false, "units overshoot length"},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				_, err := rl.DecompressBytes(test.Input)
				require.Error(t, err)
				assert.ErrorIs(t, err, squish.ErrFormat)
				if test.Truncated {
					assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
				}

				_, err = rl.Inspect(bytes.NewReader(test.Input))
				assert.ErrorIs(t, err, squish.ErrFormat, "inspect should fail too")
			},
		)
	}
}

type failingWriter struct {
	remaining int
}

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		n := w.remaining
		w.remaining = 0
		return n, errWriteFailed
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestCompress__WriteErrorPropagates(t *testing.T) {
	writer := &failingWriter{remaining: 3}
	_, err := rl.NewCompressor(bytes.NewReader([]byte("hello")), writer).Compress()
	assert.ErrorIs(t, err, errWriteFailed)
	assert.NotErrorIs(t, err, squish.ErrFormat)
}

func TestDecompress__WriteErrorPropagates(t *testing.T) {
	writer := &failingWriter{remaining: 1}
	_, err := rl.NewDecompressor(bytes.NewReader([]byte{0x00, 0x02, 'a', 'b'}), writer).Decompress()
	assert.ErrorIs(t, err, errWriteFailed)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestCompress__ReadErrorPropagates(t *testing.T) {
	_, err := rl.NewCompressor(failingReader{}, io.Discard).Compress()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestDecompress__ReadErrorIsNotFormatError(t *testing.T) {
	_, err := rl.NewDecompressor(failingReader{}, io.Discard).Decompress()
	require.Error(t, err)
	assert.NotErrorIs(t, err, squish.ErrFormat)
}

func TestAlgorithm(t *testing.T) {
	alg := rl.Algorithm()
	assert.Equal(t, "runlength", alg.Name)
	assert.Equal(t, squish.SchemeRunLength, alg.Scheme)
	assert.NoError(t, alg.Validate())
}
