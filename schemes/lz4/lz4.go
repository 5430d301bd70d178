// Package lz4 registers LZ4 (frame format) as a codec.
package lz4

import (
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/schemes/common/streaming"
	"github.com/pierrec/lz4/v4"
)

// Name is the stable identifier of this codec.
const Name = "lz4"

// Algorithm returns the LZ4 codec.
func Algorithm() squish.Algorithm {
	return streaming.Algorithm(
		Name,
		squish.SchemeLZ4,
		func(output io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(output), nil
		},
		func(input io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(input)), nil
		},
	)
}
