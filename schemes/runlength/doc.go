// Package runlength implements the reference run-length codec.
//
// The input is drained in blocks of at most [MaxRunLength] bytes. Each block is
// written out as exactly one frame: a 2-byte header followed by a payload.
//
//	Header (2 bytes, fixed layout, independent of the host):
//	    byte 0: bit 7 = isRun, bits 0-6 = bits 8-14 of length
//	    byte 1: bits 0-7 of length
//
//	Payload:
//	    isRun = 0: `length` raw bytes, verbatim.
//	    isRun = 1: units of (repeatCount, value), one byte each, with
//	               1 <= repeatCount <= 255. The repeat counts of a frame sum to
//	               exactly `length`.
//
// In both cases `length` is the number of bytes the frame decodes to, so every
// frame is self-describing. A run longer than 255 bytes is split into several
// units. For example, the 24-byte block
//
//	aaaabbbbccccddddeeeeffff
//
// is stored as the 14-byte frame
//
//	80 18  04 61 04 62 04 63 04 64 04 65 04 66
//
// Run encoding is only used for a block if it's strictly smaller than the block
// itself once the header is counted; otherwise the block is stored verbatim. An
// empty input produces no frames at all.
package runlength
