// Package none implements the pass-through codec. Its compressed form is the
// input, byte for byte. It's the baseline every other codec is measured
// against.
package none

import (
	"fmt"
	"io"

	"github.com/dargueta/squish"
)

// Name is the stable identifier of this codec.
const Name = "none"

type copier struct {
	input  io.Reader
	output io.Writer
}

func (c copier) copy() (int64, error) {
	n, err := io.Copy(c.output, c.input)
	if err != nil {
		return n, fmt.Errorf("pass-through copy failed: %w", err)
	}
	return n, nil
}

// Compress copies the input to the output unchanged.
func (c copier) Compress() (int64, error) {
	return c.copy()
}

// Decompress copies the input to the output unchanged.
func (c copier) Decompress() (int64, error) {
	return c.copy()
}

// Algorithm returns the pass-through codec.
func Algorithm() squish.Algorithm {
	return squish.Algorithm{
		Name:   Name,
		Scheme: squish.SchemeNone,
		NewCompressor: func(input io.Reader, output io.Writer) squish.Compressor {
			return copier{input: input, output: output}
		},
		NewDecompressor: func(input io.Reader, output io.Writer) squish.Decompressor {
			return copier{input: input, output: output}
		},
	}
}
