package rle8

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/utilities/iocount"
	"github.com/klauspost/compress/gzip"
)

// GzipName is the stable identifier of the RLE8 + gzip pipeline.
const GzipName = "rle8+gzip"

// CompressGzipped compresses the input using RLE8 and then gzip.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used.
func CompressGzipped(input io.Reader, output io.Writer) (int64, error) {
	counter := iocount.NewWriter(output)

	// Use the highest compression available. RLE8 already removed the long
	// runs, so what's left is small and we won't notice the speed difference.
	gzWriter, err := gzip.NewWriterLevel(counter, gzip.BestCompression)
	if err != nil {
		return 0, err
	}

	_, err = Compress(input, gzWriter)
	if err != nil {
		gzWriter.Close()
		return counter.Count(), err
	}

	if err = gzWriter.Close(); err != nil {
		return counter.Count(), fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return counter.Count(), nil
}

// DecompressGzipped takes gzipped, RLE8-encoded data and decompresses it to the
// original raw bytes.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size). If an error occurred, the value is undefined and should
// not be used.
func DecompressGzipped(input io.Reader, output io.Writer) (int64, error) {
	gzReader, err := gzip.NewReader(input)
	if err != nil {
		return 0, squish.ErrFormat.Wrap(err)
	}
	defer gzReader.Close()
	return Decompress(gzReader, output)
}

// DecompressGzippedToBytes is a convenience function wrapping
// [DecompressGzipped]. It returns the decompressed data in a new byte slice
// instead of writing to an [io.Writer].
func DecompressGzippedToBytes(input io.Reader) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := DecompressGzipped(input, &buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// GzipAlgorithm returns the RLE8 + gzip pipeline.
func GzipAlgorithm() squish.Algorithm {
	return squish.Algorithm{
		Name:   GzipName,
		Scheme: squish.SchemeChained,
		NewCompressor: func(input io.Reader, output io.Writer) squish.Compressor {
			return squish.CompressorFunc(func() (int64, error) {
				return CompressGzipped(input, output)
			})
		},
		NewDecompressor: func(input io.Reader, output io.Writer) squish.Decompressor {
			return squish.DecompressorFunc(func() (int64, error) {
				return DecompressGzipped(input, output)
			})
		},
	}
}
