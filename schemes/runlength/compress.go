package runlength

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/squish"
	"github.com/sirupsen/logrus"
)

// Compressor run-length encodes everything from its input into framed blocks.
type Compressor struct {
	input     io.Reader
	output    io.Writer
	log       logrus.FieldLogger
	blockSize int
}

// NewCompressor creates a [Compressor] bound to the given streams. Nothing is
// read or written until Compress is called.
func NewCompressor(input io.Reader, output io.Writer, opts ...Option) *Compressor {
	o := newOptions(opts)
	return &Compressor{
		input:     input,
		output:    output,
		log:       o.log,
		blockSize: o.blockSize,
	}
}

// Compress reads blocks from the input until it's exhausted, writing one frame
// per block to the output. The return value is the number of bytes written,
// only valid if no error occurred.
func (c *Compressor) Compress() (int64, error) {
	if c.blockSize < 1 || c.blockSize > MaxRunLength {
		return 0, squish.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("block size %d not in [1, %d]", c.blockSize, MaxRunLength))
	}

	block := make([]byte, c.blockSize)
	work := make([]byte, 0, MaxRunLength)
	totalBytesWritten := int64(0)

	for blockIndex := 0; ; blockIndex++ {
		bytesRead, err := io.ReadFull(c.input, block)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return totalBytesWritten, fmt.Errorf("failed to read block %d: %w", blockIndex, err)
		}
		if bytesRead == 0 {
			return totalBytesWritten, nil
		}

		n, err := c.writeFrame(blockIndex, block[:bytesRead], work)
		totalBytesWritten += n
		if err != nil {
			return totalBytesWritten, err
		}
	}
}

// writeFrame emits exactly one frame for a non-empty block.
func (c *Compressor) writeFrame(blockIndex int, block []byte, work []byte) (int64, error) {
	encoded := c.detectRuns(blockIndex, block, work)
	isRun := encoded != nil

	payload := block
	if isRun {
		payload = encoded
	}

	header, err := EncodeHeader(isRun, len(block))
	if err != nil {
		return 0, err
	}

	c.log.WithFields(logrus.Fields{
		"block":        blockIndex,
		"block_size":   len(block),
		"encoded_size": len(payload),
		"frame":        DecodeHeader(header).String(),
	}).Debug("writing frame")

	totalBytesWritten := int64(0)
	n, err := c.output.Write(header[:])
	totalBytesWritten += int64(n)
	if err != nil {
		return totalBytesWritten, fmt.Errorf("failed to write header of frame %d: %w", blockIndex, err)
	}

	n, err = c.output.Write(payload)
	totalBytesWritten += int64(n)
	if err != nil {
		return totalBytesWritten, fmt.Errorf("failed to write payload of frame %d: %w", blockIndex, err)
	}
	return totalBytesWritten, nil
}
