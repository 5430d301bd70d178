package runlength

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Decompressor reconstructs the original stream from framed blocks.
type Decompressor struct {
	input  io.Reader
	output io.Writer
	log    logrus.FieldLogger
}

// NewDecompressor creates a [Decompressor] bound to the given streams.
func NewDecompressor(input io.Reader, output io.Writer, opts ...Option) *Decompressor {
	o := newOptions(opts)
	return &Decompressor{
		input:  input,
		output: output,
		log:    o.log,
	}
}

// Decompress reads frames until the input is exhausted and writes the decoded
// bytes to the output. A stream that ends partway through a frame, or contains
// a frame that can't be decoded, fails with [squish.ErrFormat].
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size). If an error occurred, the value is undefined and should
// not be used.
func (d *Decompressor) Decompress() (int64, error) {
	reader := newFrameReader(d.input)
	block := make([]byte, MaxRunLength)
	totalBytesWritten := int64(0)

	for {
		current, err := reader.next()
		if errors.Is(err, io.EOF) {
			return totalBytesWritten, nil
		}
		if err != nil {
			return totalBytesWritten, err
		}

		d.log.WithFields(logrus.Fields{
			"frame":        current.Index,
			"header":       current.Header.String(),
			"payload_size": len(current.Payload),
		}).Debug("read frame")

		decoded := current.Payload
		if current.Header.IsRun {
			n := expandUnits(current.Payload, block)
			decoded = block[:n]
		}

		n, err := d.output.Write(decoded)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf(
				"failed to write frame %d to output: %w", current.Index, err)
		}
	}
}
