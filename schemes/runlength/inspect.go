package runlength

import (
	"errors"
	"io"

	"github.com/boljen/go-bitmap"
)

// FrameInfo describes one frame of a compressed stream.
type FrameInfo struct {
	Index int
	// Offset is where the frame's header starts in the compressed stream.
	Offset int64
	Header Header
	// PayloadSize is the number of bytes following the header.
	PayloadSize int
	// Units is the number of run units in a run frame, 0 for literal frames.
	Units int
}

// FrameMap is the layout of a compressed stream.
type FrameMap struct {
	Frames []FrameInfo
	// RunFrames has bit `i` set if frame `i` is run-encoded.
	RunFrames      bitmap.Bitmap
	OriginalSize   int64
	CompressedSize int64
}

// IsRun returns true if the frame at the given index is run-encoded. It panics
// if the index is out of range, the same as indexing Frames would.
func (m *FrameMap) IsRun(frameIndex int) bool {
	_ = m.Frames[frameIndex]
	return m.RunFrames.Get(frameIndex)
}

// RunFrameCount returns the number of run-encoded frames.
func (m *FrameMap) RunFrameCount() int {
	count := 0
	for i := range m.Frames {
		if m.RunFrames.Get(i) {
			count++
		}
	}
	return count
}

// Inspect walks a compressed stream and returns its layout without expanding
// any frames. It fails on the same malformed input [Decompressor] does.
func Inspect(input io.Reader) (*FrameMap, error) {
	reader := newFrameReader(input)
	frameMap := &FrameMap{Frames: []FrameInfo{}}

	for {
		current, err := reader.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		info := FrameInfo{
			Index:       current.Index,
			Offset:      current.Offset,
			Header:      current.Header,
			PayloadSize: len(current.Payload),
		}
		if current.Header.IsRun {
			info.Units = len(current.Payload) / UnitSize
		}

		frameMap.Frames = append(frameMap.Frames, info)
		frameMap.OriginalSize += int64(current.Header.Length)
		frameMap.CompressedSize += int64(HeaderSize + len(current.Payload))
	}

	frameMap.RunFrames = bitmap.New(len(frameMap.Frames))
	for i, info := range frameMap.Frames {
		frameMap.RunFrames.Set(i, info.Header.IsRun)
	}
	return frameMap, nil
}
