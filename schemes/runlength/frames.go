package runlength

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/squish"
)

// frame is a single frame as it appears in the compressed stream.
type frame struct {
	Index  int
	Offset int64
	Header Header
	// Payload is the raw payload: the literal bytes, or the run units.
	Payload []byte
}

// frameReader splits a compressed stream into frames, validating their
// structure but not expanding them.
type frameReader struct {
	rd      io.Reader
	index   int
	offset  int64
	payload []byte
}

func newFrameReader(rd io.Reader) *frameReader {
	return &frameReader{
		rd: rd,
		// A run frame may legally contain one unit per output byte.
		payload: make([]byte, MaxRunLength*UnitSize),
	}
}

// truncated builds the error for a frame cut off by the end of the input.
func truncated(err error, frameIndex int, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return squish.ErrFormat.Wrap(io.ErrUnexpectedEOF).WithMessage(
			fmt.Sprintf("truncated %s in frame %d", what, frameIndex))
	}
	return fmt.Errorf("failed to read %s of frame %d: %w", what, frameIndex, err)
}

// next reads the next frame. At a clean end of input (no bytes at all left) it
// returns [io.EOF]. The payload slice is only valid until the next call.
func (fr *frameReader) next() (frame, error) {
	var rawHeader [HeaderSize]byte

	n, err := io.ReadFull(fr.rd, rawHeader[:])
	if n == 0 && errors.Is(err, io.EOF) {
		return frame{}, io.EOF
	}
	if err != nil {
		return frame{}, truncated(err, fr.index, "header")
	}

	current := frame{
		Index:  fr.index,
		Offset: fr.offset,
		Header: DecodeHeader(rawHeader),
	}

	var payloadSize int
	if current.Header.IsRun {
		payloadSize, err = fr.readUnits(current.Header.Length)
	} else {
		payloadSize, err = io.ReadFull(fr.rd, fr.payload[:current.Header.Length])
		if err != nil {
			err = truncated(err, fr.index, "literal payload")
		}
	}
	if err != nil {
		return frame{}, err
	}

	current.Payload = fr.payload[:payloadSize]
	fr.index++
	fr.offset += int64(HeaderSize + payloadSize)
	return current, nil
}

// readUnits reads run units into the payload buffer until their repeat counts
// add up to `length`. It returns the number of payload bytes read.
func (fr *frameReader) readUnits(length int) (int, error) {
	produced := 0
	payloadSize := 0

	for produced < length {
		unit := fr.payload[payloadSize : payloadSize+UnitSize]
		_, err := io.ReadFull(fr.rd, unit)
		if err != nil {
			return 0, truncated(err, fr.index, "run unit")
		}

		repeatCount := int(unit[0])
		if repeatCount == 0 {
			return 0, squish.ErrFormat.WithMessage(
				fmt.Sprintf(
					"zero repeat count in unit %d of frame %d",
					payloadSize/UnitSize,
					fr.index,
				),
			)
		}
		if produced+repeatCount > length {
			return 0, squish.ErrFormat.WithMessage(
				fmt.Sprintf(
					"run units of frame %d expand past its length of %d bytes",
					fr.index,
					length,
				),
			)
		}

		produced += repeatCount
		payloadSize += UnitSize
	}
	return payloadSize, nil
}

// expandUnits writes the bytes described by a run frame's units into `out`,
// which must be at least as long as the frame. It returns the number of bytes
// written.
func expandUnits(units []byte, out []byte) int {
	produced := 0
	for i := 0; i+UnitSize <= len(units); i += UnitSize {
		repeatCount := int(units[i])
		value := units[i+1]
		for end := produced + repeatCount; produced < end; produced++ {
			out[produced] = value
		}
	}
	return produced
}
