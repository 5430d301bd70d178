package runlength

import (
	"encoding/binary"
	"fmt"

	"github.com/dargueta/squish"
)

const (
	// MaxRunLength is the largest number of bytes a single frame can describe,
	// and therefore the size of a block.
	MaxRunLength = 0x7fff
	// HeaderSize is the size of a frame header, in bytes.
	HeaderSize = 2
	// UnitSize is the size of a single (repeatCount, value) unit, in bytes.
	UnitSize = 2
	// MaxUnitRepeat is the largest repeat count a single unit can hold.
	MaxUnitRepeat = 0xff

	runFlagMask = 0x8000
	lengthMask  = 0x7fff
)

// Header is the decoded form of a frame header.
type Header struct {
	// IsRun is true if the payload is a sequence of run units, false if it's
	// the raw bytes of the block.
	IsRun bool
	// Length is the number of bytes the frame decodes to. It's always in the
	// range [0, MaxRunLength].
	Length int
}

// EncodeHeader serializes a frame header. It fails with [squish.ErrFormat] if
// `length` can't be represented in 15 bits.
func EncodeHeader(isRun bool, length int) ([HeaderSize]byte, error) {
	var raw [HeaderSize]byte
	if length < 0 || length > MaxRunLength {
		return raw, squish.ErrFormat.WithMessage(
			fmt.Sprintf("frame length %d not in [0, %d]", length, MaxRunLength))
	}

	word := uint16(length) & lengthMask
	if isRun {
		word |= runFlagMask
	}
	binary.BigEndian.PutUint16(raw[:], word)
	return raw, nil
}

// DecodeHeader deserializes a frame header. Every 2-byte value is a valid
// header, so this can't fail.
func DecodeHeader(raw [HeaderSize]byte) Header {
	word := binary.BigEndian.Uint16(raw[:])
	return Header{
		IsRun:  word&runFlagMask != 0,
		Length: int(word & lengthMask),
	}
}

// MarshalBinary implements [encoding.BinaryMarshaler].
func (h Header) MarshalBinary() ([]byte, error) {
	raw, err := EncodeHeader(h.IsRun, h.Length)
	if err != nil {
		return nil, err
	}
	return raw[:], nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler].
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) != HeaderSize {
		return squish.ErrFormat.WithMessage(
			fmt.Sprintf("frame header must be %d bytes, got %d", HeaderSize, len(data)))
	}
	*h = DecodeHeader([HeaderSize]byte{data[0], data[1]})
	return nil
}

func (h Header) String() string {
	if h.IsRun {
		return fmt.Sprintf("run(%d)", h.Length)
	}
	return fmt.Sprintf("literal(%d)", h.Length)
}
