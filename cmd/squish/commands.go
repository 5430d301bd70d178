package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dargueta/squish/harness"
	"github.com/dargueta/squish/report"
	"github.com/dargueta/squish/schemes/runlength"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// openInput returns the named file, or the app's standard input if the path is
// empty or "-". The returned close function is always safe to call.
func openInput(c *cli.Context, path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return c.App.Reader, func() error { return nil }, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file for reading: `%v`: %w", path, err)
	}
	return file, file.Close, nil
}

func createOutput(c *cli.Context, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return c.App.Writer, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file for writing: `%v`: %w", path, err)
	}
	return file, file.Close, nil
}

func (s *session) listAlgorithms(c *cli.Context) error {
	for _, name := range s.registry.Names() {
		alg := s.registry.MustLookup(name)
		fmt.Fprintf(c.App.Writer, "%-12s %s\n", alg.Name, alg.Scheme)
	}
	return nil
}

type transformFunc func(input io.Reader, output io.Writer) (int64, error)

func (s *session) transform(c *cli.Context, verb string, pickFunc func(string) (transformFunc, error)) error {
	name := c.String("algorithm")
	run, err := pickFunc(name)
	if err != nil {
		return err
	}

	input, closeInput, err := openInput(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer closeInput()

	output, closeOutput, err := createOutput(c, c.Args().Get(1))
	if err != nil {
		return err
	}

	nWritten, err := run(input, output)
	if err != nil {
		closeOutput()
		return fmt.Errorf("failed to %s with %s: %w", verb, name, err)
	}
	if err = closeOutput(); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"algorithm": name,
		"written":   nWritten,
	}).Infof("%s finished", verb)
	return nil
}

func (s *session) compress(c *cli.Context) error {
	return s.transform(c, "compress", func(name string) (transformFunc, error) {
		alg, err := s.registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		return alg.Compress, nil
	})
}

func (s *session) decompress(c *cli.Context) error {
	return s.transform(c, "decompress", func(name string) (transformFunc, error) {
		alg, err := s.registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		return alg.Decompress, nil
	})
}

func (s *session) bench(c *cli.Context) error {
	message := []byte(harness.SampleMessage)
	if c.Args().Present() {
		input, closeInput, err := openInput(c, c.Args().First())
		if err != nil {
			return err
		}
		message, err = io.ReadAll(input)
		closeInput()
		if err != nil {
			return err
		}
	}

	formatName := s.cfg.Format
	if c.IsSet("format") {
		formatName = c.String("format")
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	algorithms := s.cfg.Algorithms
	if c.IsSet("algorithm") {
		algorithms = c.StringSlice("algorithm")
	}

	metrics := harness.NewMetrics(s.cfg.MetricsNamespace)
	gatherer := prometheus.NewRegistry()
	if err = metrics.Register(gatherer); err != nil {
		return err
	}

	opts := []harness.Option{
		harness.WithLogger(s.log),
		harness.WithAlgorithms(algorithms...),
		harness.WithMetrics(metrics),
	}
	if c.Bool("dump") || s.cfg.Dump {
		opts = append(opts, harness.WithDump(c.App.Writer))
	}

	h, err := harness.New(s.registry, opts...)
	if err != nil {
		return err
	}

	results, err := h.Run(message)
	if err != nil {
		return err
	}
	summary, err := harness.Summarize(results)
	if err != nil {
		return err
	}
	if err = report.Write(c.App.Writer, format, summary); err != nil {
		return err
	}

	if c.Bool("metrics") {
		families, err := gatherer.Gather()
		if err != nil {
			return err
		}
		for _, family := range families {
			if _, err = expfmt.MetricFamilyToText(c.App.Writer, family); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *session) inspect(c *cli.Context) error {
	input, closeInput, err := openInput(c, c.Args().First())
	if err != nil {
		return err
	}
	defer closeInput()

	compressed, err := io.ReadAll(input)
	if err != nil {
		return err
	}
	frameMap, err := runlength.Inspect(bytes.NewReader(compressed))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Frame", "Offset", "Kind", "Length", "Payload", "Units"})
	for _, frame := range frameMap.Frames {
		kind := "literal"
		if frameMap.IsRun(frame.Index) {
			kind = "run"
		}
		table.Append([]string{
			strconv.Itoa(frame.Index),
			strconv.FormatInt(frame.Offset, 10),
			kind,
			strconv.Itoa(frame.Header.Length),
			strconv.Itoa(frame.PayloadSize),
			strconv.Itoa(frame.Units),
		})
	}
	table.Render()

	_, err = fmt.Fprintf(
		c.App.Writer,
		"%d frames (%d run), %d bytes compressed, %d bytes original\n",
		len(frameMap.Frames),
		frameMap.RunFrameCount(),
		frameMap.CompressedSize,
		frameMap.OriginalSize,
	)
	return err
}
