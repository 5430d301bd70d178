// Package harness runs messages through compression algorithms, verifies that
// each one reproduces its input exactly, and collects statistics on how well
// they did.
package harness

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/registry"
	"github.com/dargueta/squish/stats"
	"github.com/dargueta/squish/utilities/hexdump"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// SampleMessage is the message benchmarked when no other input is given.
const SampleMessage = "aaaabbbbccccddddeeeeffff                                      hello world"

// Result is the outcome of one successful round trip.
type Result struct {
	Algorithm          string        `json:"algorithm" yaml:"algorithm"`
	Scheme             string        `json:"scheme" yaml:"scheme"`
	Stats              stats.Stats   `json:"stats" yaml:"stats"`
	OriginalDigest     uint64        `json:"original_digest" yaml:"original_digest"`
	DecompressedDigest uint64        `json:"decompressed_digest" yaml:"decompressed_digest"`
	Elapsed            time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	Compressed         []byte        `json:"-" yaml:"-"`
}

// Harness drives algorithms from a registry.
type Harness struct {
	registry   *registry.Registry
	algorithms []string
	log        logrus.FieldLogger
	metrics    *Metrics
	dump       io.Writer
}

// New creates a harness that looks algorithms up in `reg`. It fails if
// [WithAlgorithms] names an algorithm that isn't registered.
func New(reg *registry.Registry, opts ...Option) (*Harness, error) {
	if reg == nil {
		return nil, squish.ErrInvalidArgument.WithMessage("registry is nil")
	}

	o := newOptions(opts)
	if _, err := reg.Select(o.algorithms); err != nil {
		return nil, err
	}

	return &Harness{
		registry:   reg,
		algorithms: o.algorithms,
		log:        o.log,
		metrics:    o.metrics,
		dump:       o.dump,
	}, nil
}

// RoundTrip compresses `message` with `alg`, decompresses the result and checks
// that it's identical to `message`.
//
// If it isn't, the returned error wraps [squish.ErrRoundTripMismatch] and
// carries hexdumps of the original, compressed and decompressed data. The same
// dump is logged at error level.
func (h *Harness) RoundTrip(alg squish.Algorithm, message []byte) (Result, error) {
	log := h.log.WithField("algorithm", alg.Name)
	started := time.Now()

	compressed := bytes.Buffer{}
	if _, err := alg.Compress(bytes.NewReader(message), &compressed); err != nil {
		h.recordFailure(alg.Name)
		log.WithError(err).Error("compression failed")
		return Result{}, fmt.Errorf("%s: compression failed: %w", alg.Name, err)
	}

	decompressed := bytes.Buffer{}
	if _, err := alg.Decompress(bytes.NewReader(compressed.Bytes()), &decompressed); err != nil {
		h.recordFailure(alg.Name)
		log.WithError(err).Error("decompression failed")
		return Result{}, fmt.Errorf("%s: decompression failed: %w", alg.Name, err)
	}
	elapsed := time.Since(started)

	if !bytes.Equal(message, decompressed.Bytes()) {
		h.recordFailure(alg.Name)
		report := mismatchReport(message, compressed.Bytes(), decompressed.Bytes())
		log.WithFields(logrus.Fields{
			"original_size":     len(message),
			"decompressed_size": decompressed.Len(),
		}).Error(squish.ErrRoundTripMismatch.Error() + "\n" + report)
		return Result{}, squish.ErrRoundTripMismatch.WithMessage(
			fmt.Sprintf("%s\n%s", alg.Name, report))
	}

	if h.metrics != nil {
		h.metrics.observeSuccess(alg.Name, len(message), compressed.Len(), elapsed)
	}

	result := Result{
		Algorithm:          alg.Name,
		Scheme:             alg.Scheme.String(),
		Stats:              stats.Compute(message, compressed.Bytes()),
		OriginalDigest:     xxh3.Hash(message),
		DecompressedDigest: xxh3.Hash(decompressed.Bytes()),
		Elapsed:            elapsed,
		Compressed:         compressed.Bytes(),
	}

	log.WithFields(logrus.Fields{
		"original_size":   result.Stats.OriginalSize,
		"compressed_size": result.Stats.CompressedSize,
		"space_savings":   result.Stats.SpaceSavings,
	}).Info("round trip complete")

	if h.dump != nil {
		fmt.Fprintf(h.dump, "Compressed data (%s):\n", alg.Name)
		if err := hexdump.Dump(h.dump, result.Compressed); err != nil {
			return result, fmt.Errorf("failed to write dump: %w", err)
		}
	}
	return result, nil
}

// Run round-trips `message` through every selected algorithm in order. It stops
// at the first failure, returning the results gathered up to that point along
// with the error.
func (h *Harness) Run(message []byte) ([]Result, error) {
	algorithms, err := h.registry.Select(h.algorithms)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(algorithms))
	for _, alg := range algorithms {
		result, err := h.RoundTrip(alg, message)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (h *Harness) recordFailure(algorithm string) {
	if h.metrics != nil {
		h.metrics.observeFailure(algorithm)
	}
}

func mismatchReport(original, compressed, decompressed []byte) string {
	builder := strings.Builder{}
	builder.WriteString("Original data:\n")
	builder.WriteString(hexdump.String(original))
	builder.WriteString("Compressed data:\n")
	builder.WriteString(hexdump.String(compressed))
	builder.WriteString("Decompressed data:\n")
	builder.WriteString(hexdump.String(decompressed))
	return builder.String()
}
