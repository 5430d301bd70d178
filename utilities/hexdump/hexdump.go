// Package hexdump renders byte buffers for diagnostics: an offset, sixteen
// hex columns and the printable ASCII for each line, followed by the whole
// buffer as one unbroken hex string.
package hexdump

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const BytesPerLine = 16

func isPrintable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// Dump writes the rendering of `data` to `w`.
func Dump(w io.Writer, data []byte) error {
	out := bufio.NewWriter(w)

	for offset := 0; offset < len(data); offset += BytesPerLine {
		end := offset + BytesPerLine
		if end > len(data) {
			end = len(data)
		}
		line := data[offset:end]

		fmt.Fprintf(out, "%08x  ", offset)
		for column := 0; column < BytesPerLine; column++ {
			if column < len(line) {
				fmt.Fprintf(out, "%02x ", line[column])
			} else {
				out.WriteString("   ")
			}
		}

		out.WriteByte(' ')
		for _, b := range line {
			if isPrintable(b) {
				out.WriteByte(b)
			} else {
				out.WriteByte('.')
			}
		}
		out.WriteByte('\n')
	}

	out.WriteString("RawHex: ")
	out.WriteString(hex.EncodeToString(data))
	out.WriteByte('\n')
	return out.Flush()
}

// String returns the same rendering as [Dump].
func String(data []byte) string {
	builder := strings.Builder{}
	// Writing to a strings.Builder never fails.
	_ = Dump(&builder, data)
	return builder.String()
}
