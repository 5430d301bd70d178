// Package stats computes the figures reported for each compression run.
package stats

import (
	"math"
)

// Stats describes how well one algorithm compressed one message.
type Stats struct {
	CompressedSize    int     `json:"compressed_size" yaml:"compressed_size" csv:"compressed_size"`
	OriginalSize      int     `json:"original_size" yaml:"original_size" csv:"original_size"`
	CompressionRatio  float64 `json:"compression_ratio" yaml:"compression_ratio" csv:"compression_ratio"`
	SpaceSavings      float64 `json:"space_savings" yaml:"space_savings" csv:"space_savings"`
	MessageEntropy    float64 `json:"message_entropy" yaml:"message_entropy" csv:"message_entropy"`
	CompressedEntropy float64 `json:"compressed_entropy" yaml:"compressed_entropy" csv:"compressed_entropy"`
	EntropyDifference float64 `json:"entropy_difference" yaml:"entropy_difference" csv:"entropy_difference"`
}

// Entropy returns the Shannon entropy of `data` in bits per byte. An empty
// buffer has zero entropy.
func Entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	var frequencies [256]int
	for _, b := range data {
		frequencies[b]++
	}

	total := float64(len(data))
	entropy := 0.0
	for _, count := range frequencies {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// Compute gathers the statistics for `original` compressed to `compressed`.
//
// The compression ratio is original/compressed and space savings is
// 1 - compressed/original. Either is reported as 0 when its denominator is 0.
func Compute(original, compressed []byte) Stats {
	result := Stats{
		CompressedSize:    len(compressed),
		OriginalSize:      len(original),
		MessageEntropy:    Entropy(original),
		CompressedEntropy: Entropy(compressed),
	}
	result.EntropyDifference = result.CompressedEntropy - result.MessageEntropy

	if len(compressed) > 0 {
		result.CompressionRatio = float64(len(original)) / float64(len(compressed))
	}
	if len(original) > 0 {
		result.SpaceSavings = 1.0 - float64(len(compressed))/float64(len(original))
	}
	return result
}
