// Package snappy registers Snappy (framed stream format) as a codec.
package snappy

import (
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/schemes/common/streaming"
	"github.com/golang/snappy"
)

// Name is the stable identifier of this codec.
const Name = "snappy"

// Algorithm returns the Snappy codec.
func Algorithm() squish.Algorithm {
	return streaming.Algorithm(
		Name,
		squish.SchemeSnappy,
		func(output io.Writer) (io.WriteCloser, error) {
			return snappy.NewBufferedWriter(output), nil
		},
		func(input io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(snappy.NewReader(input)), nil
		},
	)
}
