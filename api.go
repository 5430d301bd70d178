package squish

import (
	"fmt"
	"io"
)

// Compressor reads everything from the input stream it was created with and
// writes the compressed form to its output stream.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used.
type Compressor interface {
	Compress() (int64, error)
}

// Decompressor reads a compressed stream to the end and writes the original
// bytes to its output stream.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size). If an error occurred, the value is undefined and should
// not be used.
type Decompressor interface {
	Decompress() (int64, error)
}

// CompressorFactory binds a new [Compressor] to a stream pair. The streams are
// borrowed for the duration of a single Compress call.
type CompressorFactory func(input io.Reader, output io.Writer) Compressor

// DecompressorFactory binds a new [Decompressor] to a stream pair.
type DecompressorFactory func(input io.Reader, output io.Writer) Decompressor

// Scheme identifies the family an [Algorithm] belongs to. The set is closed;
// adding a scheme means adding a constant here.
type Scheme int

const (
	SchemeNone Scheme = iota
	SchemeRunLength
	SchemeRLE8
	SchemeRLE90
	SchemeGzip
	SchemeZstd
	SchemeLZ4
	SchemeSnappy
	SchemeChained

	MaxScheme = SchemeChained
)

var schemeNames = [...]string{
	SchemeNone:      "none",
	SchemeRunLength: "runlength",
	SchemeRLE8:      "rle8",
	SchemeRLE90:     "rle90",
	SchemeGzip:      "gzip",
	SchemeZstd:      "zstd",
	SchemeLZ4:       "lz4",
	SchemeSnappy:    "snappy",
	SchemeChained:   "chained",
}

func (s Scheme) String() string {
	if s < 0 || s > MaxScheme {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// Algorithm binds a stable name to a pair of factories. Name is used both for
// selection and in reports, so it must never change once published.
type Algorithm struct {
	Name            string
	Scheme          Scheme
	NewCompressor   CompressorFactory
	NewDecompressor DecompressorFactory
}

// Validate checks that the algorithm can actually be used.
func (a Algorithm) Validate() error {
	if a.Name == "" {
		return ErrInvalidArgument.WithMessage("algorithm has no name")
	}
	if a.NewCompressor == nil || a.NewDecompressor == nil {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf("algorithm %q is missing a compressor or decompressor factory", a.Name))
	}
	return nil
}

// Compress is a convenience wrapper that creates a compressor for the given
// streams and runs it.
func (a Algorithm) Compress(input io.Reader, output io.Writer) (int64, error) {
	return a.NewCompressor(input, output).Compress()
}

// Decompress is a convenience wrapper that creates a decompressor for the given
// streams and runs it.
func (a Algorithm) Decompress(input io.Reader, output io.Writer) (int64, error) {
	return a.NewDecompressor(input, output).Decompress()
}

// CompressorFunc adapts an ordinary function to the [Compressor] interface.
type CompressorFunc func() (int64, error)

func (f CompressorFunc) Compress() (int64, error) {
	return f()
}

// DecompressorFunc adapts an ordinary function to the [Decompressor] interface.
type DecompressorFunc func() (int64, error)

func (f DecompressorFunc) Decompress() (int64, error) {
	return f()
}
