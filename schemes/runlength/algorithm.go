package runlength

import (
	"bytes"
	"io"

	"github.com/dargueta/squish"
)

// Name is the stable identifier of this codec.
const Name = "runlength"

// Algorithm returns the run-length codec as a [squish.Algorithm]. The options
// are applied to every compressor and decompressor it creates.
func Algorithm(opts ...Option) squish.Algorithm {
	return squish.Algorithm{
		Name:   Name,
		Scheme: squish.SchemeRunLength,
		NewCompressor: func(input io.Reader, output io.Writer) squish.Compressor {
			return NewCompressor(input, output, opts...)
		},
		NewDecompressor: func(input io.Reader, output io.Writer) squish.Decompressor {
			return NewDecompressor(input, output, opts...)
		},
	}
}

// CompressBytes is a convenience function wrapping [Compressor]. It returns the
// compressed data in a new byte slice instead of writing to an [io.Writer].
func CompressBytes(data []byte, opts ...Option) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := NewCompressor(bytes.NewReader(data), &buffer, opts...).Compress()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DecompressBytes is the inverse of [CompressBytes].
func DecompressBytes(compressed []byte, opts ...Option) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := NewDecompressor(bytes.NewReader(compressed), &buffer, opts...).Decompress()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
