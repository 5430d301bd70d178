package runlength

import (
	"fmt"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/utilities/runs"
)

// encodeRuns appends the run units for `block` to `work` and returns the
// result. The encoded form is never allowed to grow past MaxRunLength bytes; if
// it would, this returns [squish.ErrOverflow] instead.
func encodeRuns(block []byte, work []byte) ([]byte, error) {
	for i := 0; i < len(block); {
		run := runs.Next(block, i)
		i += run.RunLength

		for remaining := run.RunLength; remaining > 0; {
			count := min(remaining, MaxUnitRepeat)
			if len(work)+UnitSize > MaxRunLength {
				return nil, squish.ErrOverflow.WithMessage(
					fmt.Sprintf(
						"run units for %d-byte block exceed %d bytes at offset %d",
						len(block),
						MaxRunLength,
						i-remaining,
					),
				)
			}
			work = append(work, byte(count), run.Byte)
			remaining -= count
		}
	}
	return work, nil
}

// detectRuns decides whether `block` should be run-encoded. If it should, it
// returns the encoded payload. If not, it returns nil and literal encoding must
// be used. Overflow isn't an error here; it just means the block isn't worth
// encoding.
func (c *Compressor) detectRuns(blockIndex int, block []byte, work []byte) []byte {
	encoded, err := encodeRuns(block, work[:0])
	if err != nil {
		c.log.WithField("block", blockIndex).Debugf("falling back to literal: %s", err)
		return nil
	}

	// Ties go to the literal encoding.
	if len(encoded)+HeaderSize < len(block) {
		return encoded
	}
	return nil
}
