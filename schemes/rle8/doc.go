// Package rle8 implements the run-length encoding used by the Microsoft BMP
// file format, also known as RLE8, and an RLE8 + gzip pipeline.
//
// A run of N >= 2 copies of byte B becomes the group `B B (N-2)`, so a decoder
// that sees the same byte twice in a row knows a count follows:
//
//	WXXXXXXXXXXXXXXXYZZ
//	W XX 13 Y ZZ 0
//
// One group covers at most 257 bytes. Longer runs are cut into 257-byte groups
// plus whatever is left, so 300 "X" bytes encode as `XX 255 XX 41`. A pair of
// equal bytes costs three bytes, since the count must follow even when it's 0.
//
// Unlike the framed format in package runlength there's no block structure and
// no fallback to literal storage, so random input grows. Running gzip over the
// result recovers most of that; the "rle8+gzip" algorithm does exactly this.
package rle8
