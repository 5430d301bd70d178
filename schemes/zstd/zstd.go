// Package zstd registers ZStandard as a codec.
package zstd

import (
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/schemes/common/streaming"
	"github.com/klauspost/compress/zstd"
)

// Name is the stable identifier of this codec.
const Name = "zstd"

type decoder struct {
	*zstd.Decoder
}

// Close releases the decoder. zstd's own Close doesn't return an error.
func (d decoder) Close() error {
	d.Decoder.Close()
	return nil
}

// Algorithm returns the ZStandard codec.
func Algorithm() squish.Algorithm {
	return streaming.Algorithm(
		Name,
		squish.SchemeZstd,
		func(output io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(
				output,
				zstd.WithEncoderConcurrency(1),
				// Empty input still gets a frame, so the decoder has something
				// to validate.
				zstd.WithZeroFrames(true),
			)
		},
		func(input io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(input, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}
			return decoder{dec}, nil
		},
	)
}
