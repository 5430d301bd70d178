package squish

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by everything in this module. Every
// CodecError wraps one of the sentinels below, so callers can test for the
// category with [errors.Is].
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseSquishError string

const rootError = baseSquishError("")

// ErrFormat indicates a malformed or truncated compressed stream. It's never
// recoverable; the decompressor stops at the first one.
var ErrFormat = rootError.WithMessage("Malformed compressed stream")

// ErrOverflow indicates an encoded block would exceed the largest representable
// size. The run-length detector absorbs it and falls back to literal encoding.
var ErrOverflow = rootError.WithMessage("Encoded size overflow")

// ErrRoundTripMismatch indicates that decompressing a compressed stream didn't
// reproduce the original input. This always means a codec is broken.
var ErrRoundTripMismatch = rootError.WithMessage("Decompressed data does not match original data")

var ErrUnknownAlgorithm = rootError.WithMessage("Unknown compression algorithm")
var ErrDuplicateAlgorithm = rootError.WithMessage("Compression algorithm already registered")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

func (e baseSquishError) Error() string {
	return string(e)
}

func (e baseSquishError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseSquishError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
