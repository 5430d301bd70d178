// Package report renders harness summaries for people and for other programs.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/harness"
	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format selects how a summary is rendered.
type Format string

const (
	FormatTable = Format("table")
	FormatCSV   = Format("csv")
	FormatJSON  = Format("json")
	FormatYAML  = Format("yaml")
)

type writerFunc func(io.Writer, harness.Summary) error

var writers = map[Format]writerFunc{
	FormatTable: writeTable,
	FormatCSV:   writeCSV,
	FormatJSON:  writeJSON,
	FormatYAML:  writeYAML,
}

// Formats returns the names of all supported formats, sorted.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for format := range writers {
		names = append(names, string(format))
	}
	sort.Strings(names)
	return names
}

// ParseFormat converts a format name to a [Format], failing with
// [squish.ErrInvalidArgument] if it's not supported.
func ParseFormat(name string) (Format, error) {
	format := Format(name)
	if _, ok := writers[format]; !ok {
		return "", squish.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown report format %q (available: %v)", name, Formats()))
	}
	return format, nil
}

// Write renders `summary` to `w` in the given format.
func Write(w io.Writer, format Format, summary harness.Summary) error {
	writer, ok := writers[format]
	if !ok {
		return squish.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown report format %q (available: %v)", format, Formats()))
	}
	return writer(w, summary)
}

// row is one result flattened for tabular output.
type row struct {
	Algorithm         string  `csv:"algorithm"`
	Scheme            string  `csv:"scheme"`
	OriginalSize      int     `csv:"original_size"`
	CompressedSize    int     `csv:"compressed_size"`
	CompressionRatio  float64 `csv:"compression_ratio"`
	SpaceSavings      float64 `csv:"space_savings"`
	MessageEntropy    float64 `csv:"message_entropy"`
	CompressedEntropy float64 `csv:"compressed_entropy"`
	EntropyDifference float64 `csv:"entropy_difference"`
	Digest            string  `csv:"digest"`
	Best              bool    `csv:"best"`
}

func rows(summary harness.Summary) []*row {
	result := make([]*row, 0, len(summary.Results))
	for _, r := range summary.Results {
		result = append(result, &row{
			Algorithm:         r.Algorithm,
			Scheme:            r.Scheme,
			OriginalSize:      r.Stats.OriginalSize,
			CompressedSize:    r.Stats.CompressedSize,
			CompressionRatio:  r.Stats.CompressionRatio,
			SpaceSavings:      r.Stats.SpaceSavings,
			MessageEntropy:    r.Stats.MessageEntropy,
			CompressedEntropy: r.Stats.CompressedEntropy,
			EntropyDifference: r.Stats.EntropyDifference,
			Digest:            fmt.Sprintf("%016x", r.DecompressedDigest),
			Best:              r.Algorithm == summary.Best,
		})
	}
	return result
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}

func writeTable(w io.Writer, summary harness.Summary) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{
		"Algorithm",
		"Original Size",
		"Compressed Size",
		"Compression Ratio",
		"Space Savings",
		"Message Entropy",
		"Compressed Entropy",
		"Entropy Difference",
	})

	for _, r := range rows(summary) {
		name := r.Algorithm
		if r.Best {
			name += " *"
		}
		table.Append([]string{
			name,
			strconv.Itoa(r.OriginalSize),
			strconv.Itoa(r.CompressedSize),
			formatFloat(r.CompressionRatio),
			formatFloat(r.SpaceSavings),
			formatFloat(r.MessageEntropy),
			formatFloat(r.CompressedEntropy),
			formatFloat(r.EntropyDifference),
		})
	}
	table.Render()

	_, err := fmt.Fprintf(
		w,
		"Best algorithm: %s (space savings %s)\n",
		summary.Best,
		formatFloat(summary.BestSpaceSavings),
	)
	return err
}

func writeCSV(w io.Writer, summary harness.Summary) error {
	return gocsv.Marshal(rows(summary), w)
}

func writeJSON(w io.Writer, summary harness.Summary) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func writeYAML(w io.Writer, summary harness.Summary) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(summary); err != nil {
		return err
	}
	return encoder.Close()
}
