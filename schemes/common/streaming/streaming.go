// Package streaming adapts stream-oriented compression libraries to the
// [squish.Compressor] and [squish.Decompressor] interfaces.
package streaming

import (
	"fmt"
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/utilities/iocount"
)

// WriterFactory wraps a destination in a compressing writer. Closing the writer
// must flush everything to the destination.
type WriterFactory func(output io.Writer) (io.WriteCloser, error)

// ReaderFactory wraps a compressed source in a decompressing reader.
type ReaderFactory func(input io.Reader) (io.ReadCloser, error)

// Compress copies the input through a compressing writer. The return value is
// the number of compressed bytes written to the output.
func Compress(name string, input io.Reader, output io.Writer, newWriter WriterFactory) (int64, error) {
	counter := iocount.NewWriter(output)
	writer, err := newWriter(counter)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create compressor: %w", name, err)
	}

	if _, err = io.Copy(writer, input); err != nil {
		writer.Close()
		return counter.Count(), fmt.Errorf("%s: compression failed: %w", name, err)
	}
	if err = writer.Close(); err != nil {
		return counter.Count(), fmt.Errorf("%s: failed to flush compressed stream: %w", name, err)
	}
	return counter.Count(), nil
}

// Decompress copies the input through a decompressing reader. Failures of the
// output are returned as-is; any other failure means the compressed stream
// couldn't be decoded and is reported as [squish.ErrFormat].
func Decompress(name string, input io.Reader, output io.Writer, newReader ReaderFactory) (int64, error) {
	reader, err := newReader(input)
	if err != nil {
		return 0, squish.ErrFormat.Wrap(err).WithMessage(name)
	}
	defer reader.Close()

	counter := iocount.NewWriter(output)
	n, err := io.Copy(counter, reader)
	if err != nil {
		if counter.Err() != nil {
			return n, fmt.Errorf("%s: failed to write to output: %w", name, err)
		}
		return n, squish.ErrFormat.Wrap(err).WithMessage(name)
	}
	return n, nil
}

// Algorithm builds a [squish.Algorithm] from a pair of stream factories.
func Algorithm(
	name string, scheme squish.Scheme, newWriter WriterFactory, newReader ReaderFactory,
) squish.Algorithm {
	return squish.Algorithm{
		Name:   name,
		Scheme: scheme,
		NewCompressor: func(input io.Reader, output io.Writer) squish.Compressor {
			return squish.CompressorFunc(func() (int64, error) {
				return Compress(name, input, output, newWriter)
			})
		},
		NewDecompressor: func(input io.Reader, output io.Writer) squish.Decompressor {
			return squish.DecompressorFunc(func() (int64, error) {
				return Decompress(name, input, output, newReader)
			})
		},
	}
}
