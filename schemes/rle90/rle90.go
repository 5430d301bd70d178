// Package rle90 implements the marker-based run-length encoding used by BinHex
// and early archivers such as ARC, where the byte 0x90 introduces a repeat.
//
//	X          literal byte X (X != 0x90)
//	90 00      literal byte 0x90
//	90 n       repeat the previous byte n more times (1 <= n <= 255)
//
// For example, `FF FF FF FF FF FF 7A` is stored as `FF 90 05 7A`. A stream that
// begins with a repeat has no previous byte to repeat and is malformed.
package rle90

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/utilities/runs"
)

// Name is the stable identifier of this codec.
const Name = "rle90"

// Marker is the byte that introduces a repeat count.
const Marker = 0x90

const maxRepeat = 255

func writeLiteral(output io.Writer, value byte) (int, error) {
	if value == Marker {
		return output.Write([]byte{Marker, 0})
	}
	return output.Write([]byte{value})
}

// Compress reads bytes from the input and writes compressed data to the output
// until the input is exhausted. The return value is the number of bytes
// written, only valid if no error occurred.
func Compress(input io.Reader, output io.Writer) (int64, error) {
	grouper := runs.NewGrouper(input)
	totalBytesWritten := int64(0)

	for {
		run, err := grouper.NextRun()
		if errors.Is(err, io.EOF) {
			return totalBytesWritten, nil
		}
		if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		n, err := writeLiteral(output, run.Byte)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}

		for remaining := run.RunLength - 1; remaining > 0; {
			count := min(remaining, maxRepeat)
			if count == 1 && run.Byte != Marker {
				// A single extra byte is cheaper written out than as a repeat.
				n, err = output.Write([]byte{run.Byte})
			} else {
				n, err = output.Write([]byte{Marker, byte(count)})
			}
			totalBytesWritten += int64(n)
			if err != nil {
				return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
			}
			remaining -= count
		}
	}
}

// Decompress expands RLE90 data from the input until it's exhausted.
func Decompress(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	lastByte := -1
	totalBytesWritten := int64(0)
	repeatBuffer := make([]byte, maxRepeat)

	for offset := int64(0); ; offset++ {
		currentByte, err := source.ReadByte()
		if errors.Is(err, io.EOF) {
			return totalBytesWritten, nil
		}
		if err != nil {
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		currentOutput := []byte{currentByte}
		if currentByte == Marker {
			countByte, err := source.ReadByte()
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, squish.ErrFormat.Wrap(io.ErrUnexpectedEOF).WithMessage(
					fmt.Sprintf("missing repeat count after marker at offset %d", offset))
			}
			if err != nil {
				return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
			}
			offset++

			if countByte == 0 {
				// Escape sequence 90 00 gives 90.
				lastByte = Marker
			} else {
				if lastByte < 0 {
					return totalBytesWritten, squish.ErrFormat.WithMessage(
						fmt.Sprintf("repeat at offset %d has no byte to repeat", offset-1))
				}
				currentOutput = repeatBuffer[:countByte]
				for i := range currentOutput {
					currentOutput[i] = byte(lastByte)
				}
			}
		} else {
			lastByte = int(currentByte)
		}

		n, err := output.Write(currentOutput)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}

// Algorithm returns the RLE90 codec.
func Algorithm() squish.Algorithm {
	return squish.Algorithm{
		Name:   Name,
		Scheme: squish.SchemeRLE90,
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
