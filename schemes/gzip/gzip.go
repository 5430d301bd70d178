// Package gzip registers gzip (DEFLATE) as a codec.
package gzip

import (
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/schemes/common/streaming"
	"github.com/klauspost/compress/gzip"
)

// Name is the stable identifier of this codec.
const Name = "gzip"

// Algorithm returns the gzip codec, always at the highest compression level.
func Algorithm() squish.Algorithm {
	return streaming.Algorithm(
		Name,
		squish.SchemeGzip,
		func(output io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(output, gzip.BestCompression)
		},
		func(input io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(input)
		},
	)
}
