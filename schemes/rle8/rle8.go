package rle8

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/utilities/runs"
)

// Name is the stable identifier of the plain RLE8 codec.
const Name = "rle8"

// maxGroupLength is the longest run a single `B B count` group can describe.
const maxGroupLength = 257

// appendRun appends the RLE8 encoding of `run` to `dst`. A run is written as
// zero or more `B B count` groups, and a single trailing B if one byte is left
// over.
func appendRun(dst []byte, run runs.ByteRun) []byte {
	for remaining := run.RunLength; remaining > 0; {
		if remaining == 1 {
			return append(dst, run.Byte)
		}
		groupLength := min(remaining, maxGroupLength)
		dst = append(dst, run.Byte, run.Byte, byte(groupLength-2))
		remaining -= groupLength
	}
	return dst
}

// Compress reads bytes from the input and writes compressed data to the output
// until the input is exhausted. The return value is the number of bytes
// written, only valid if no error occurred.
func Compress(input io.Reader, output io.Writer) (int64, error) {
	grouper := runs.NewGrouper(input)
	encoded := make([]byte, 0, 3*((maxGroupLength+1)/2))
	totalBytesWritten := int64(0)

	for {
		run, err := grouper.NextRun()
		if errors.Is(err, io.EOF) {
			return totalBytesWritten, nil
		}
		if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		encoded = appendRun(encoded[:0], run)
		n, err := output.Write(encoded)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}

// Decompress expands RLE8 data from the input until it's exhausted. A stream
// that ends right after a doubled byte, where the repeat count should be, fails
// with [squish.ErrFormat].
func Decompress(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	sink := bufio.NewWriter(output)
	totalBytesWritten := int64(0)

	// previous is the last literal byte written, or -1 right after a group
	// ends, since a group's bytes can't pair with whatever follows.
	previous := -1

	for {
		current, err := source.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		if int(current) != previous {
			if err = sink.WriteByte(current); err != nil {
				return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
			}
			totalBytesWritten++
			previous = int(current)
			continue
		}

		count, err := source.ReadByte()
		if errors.Is(err, io.EOF) {
			return totalBytesWritten, squish.ErrFormat.Wrap(io.ErrUnexpectedEOF).WithMessage(
				fmt.Sprintf("missing repeat count after two %02x bytes", current))
		}
		if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		// The first byte of the pair has already been written.
		n, err := sink.Write(bytes.Repeat([]byte{current}, int(count)+1))
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
		previous = -1
	}

	if err := sink.Flush(); err != nil {
		return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
	}
	return totalBytesWritten, nil
}

// Algorithm returns the plain RLE8 codec.
func Algorithm() squish.Algorithm {
	return squish.Algorithm{
		Name:   Name,
		Scheme: squish.SchemeRLE8,
		NewCompressor: func(input io.Reader, output io.Writer) squish.Compressor {
			return squish.CompressorFunc(func() (int64, error) {
				return Compress(input, output)
			})
		},
		NewDecompressor: func(input io.Reader, output io.Writer) squish.Decompressor {
			return squish.DecompressorFunc(func() (int64, error) {
				return Decompress(input, output)
			})
		},
	}
}
