package runlength

import (
	"io"

	"github.com/sirupsen/logrus"
)

type options struct {
	log       logrus.FieldLogger
	blockSize int
}

// Option sets additional parameters on a compressor or decompressor.
type Option func(*options)

// WithLogger sets the logger diagnostic messages are written to. By default
// nothing is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithBlockSize makes the compressor read blocks smaller than [MaxRunLength].
// The decompressor ignores it, since frames carry their own size. The size must
// be in [1, MaxRunLength]; anything else makes Compress fail.
func WithBlockSize(size int) Option {
	return func(o *options) {
		o.blockSize = size
	}
}

func newOptions(opts []Option) options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := options{
		log:       discard,
		blockSize: MaxRunLength,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
