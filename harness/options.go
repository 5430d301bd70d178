package harness

import (
	"io"

	"github.com/sirupsen/logrus"
)

type options struct {
	log        logrus.FieldLogger
	algorithms []string
	metrics    *Metrics
	dump       io.Writer
}

// Option configures a [Harness].
type Option func(*options)

// WithLogger sets the logger used for progress and mismatch reports. By default
// nothing is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithAlgorithms restricts [Harness.Run] to the named algorithms, in the given
// order. Without it, every registered algorithm runs.
func WithAlgorithms(names ...string) Option {
	return func(o *options) {
		o.algorithms = append([]string(nil), names...)
	}
}

// WithMetrics records every round trip in `metrics`.
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithDump writes a hexdump of each successful compressed result to `w`.
func WithDump(w io.Writer) Option {
	return func(o *options) {
		o.dump = w
	}
}

func newOptions(opts []Option) options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := options{log: discard}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
