// Package runs groups a byte sequence into maximal runs of a single byte value.
//
// Every run-length codec in this module is built on top of it: the stream
// [Grouper] is used by the codecs that work byte-at-a-time on an [io.Reader],
// [Next] by the ones that work on a block already in memory.
package runs

import (
	"bufio"
	"errors"
	"io"
)

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates either the end of the input was reached, or an error occurred.
	RunLength int
}

// InvalidRun is returned in place of a run when there is no more input.
var InvalidRun = ByteRun{Byte: 0, RunLength: 0}

// IsValid returns true if the run covers at least one byte.
func (run ByteRun) IsValid() bool {
	return run.RunLength > 0
}

// Grouper splits a stream into consecutive [ByteRun]s.
type Grouper struct {
	rd *bufio.Reader
}

func NewGrouper(rd io.Reader) *Grouper {
	return &Grouper{rd: bufio.NewReader(rd)}
}

// NextRun returns a [ByteRun] for the next byte or run of byte values in the
// stream. At the end of the stream it returns [InvalidRun] and [io.EOF].
func (grouper *Grouper) NextRun() (ByteRun, error) {
	firstByte, err := grouper.rd.ReadByte()
	// Bail if any error occurred, including EOF.
	if err != nil {
		return InvalidRun, err
	}

	var runLength int
	for runLength = 1; ; runLength++ {
		currentByte, err := grouper.rd.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return InvalidRun, err
		}
		if currentByte != firstByte {
			// Hit a different byte, back up and return.
			_ = grouper.rd.UnreadByte()
			break
		}
	}
	return ByteRun{Byte: firstByte, RunLength: runLength}, nil
}

// Next returns the maximal run in `data` beginning at index `start`. If `start`
// is past the end of the slice, it returns [InvalidRun].
func Next(data []byte, start int) ByteRun {
	if start < 0 || start >= len(data) {
		return InvalidRun
	}

	end := start + 1
	for end < len(data) && data[end] == data[start] {
		end++
	}
	return ByteRun{Byte: data[start], RunLength: end - start}
}

// Split breaks `data` up into its runs, in order.
func Split(data []byte) []ByteRun {
	result := []ByteRun{}
	for i := 0; i < len(data); {
		run := Next(data, i)
		result = append(result, run)
		i += run.RunLength
	}
	return result
}
