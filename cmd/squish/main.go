package main

import (
	"io"
	"log"
	"os"

	"github.com/dargueta/squish/config"
	"github.com/dargueta/squish/registry"
	"github.com/dargueta/squish/schemes/runlength"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// session is the state shared by all commands of one invocation.
type session struct {
	cfg      config.Config
	log      *logrus.Logger
	registry *registry.Registry
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	s := &session{}

	return &cli.App{
		Name:      "squish",
		Usage:     "Compress, decompress and compare byte streams",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read settings from `FILE`",
				EnvVars: []string{"SQUISH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level",
			},
		},
		Before: func(c *cli.Context) error {
			return s.load(c)
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the available algorithms",
				Action: s.listAlgorithms,
			},
			{
				Name:      "compress",
				Usage:     "Compress a file with one algorithm",
				ArgsUsage: "[INPUT_FILE [OUTPUT_FILE]]",
				Flags:     []cli.Flag{algorithmFlag()},
				Action:    s.compress,
			},
			{
				Name:      "decompress",
				Usage:     "Decompress a file with one algorithm",
				ArgsUsage: "[INPUT_FILE [OUTPUT_FILE]]",
				Flags:     []cli.Flag{algorithmFlag()},
				Action:    s.decompress,
			},
			{
				Name:      "bench",
				Usage:     "Round-trip a message through several algorithms and compare them",
				ArgsUsage: "[INPUT_FILE]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "algorithm",
						Aliases: []string{"a"},
						Usage:   "only run `NAME`; may be repeated",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "report format: table, csv, json or yaml",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "hexdump each algorithm's compressed output",
					},
					&cli.BoolFlag{
						Name:  "metrics",
						Usage: "print the collected Prometheus metrics after the report",
					},
				},
				Action: s.bench,
			},
			{
				Name:      "inspect",
				Usage:     "Show the frames of a runlength-compressed file",
				ArgsUsage: "[INPUT_FILE]",
				Action:    s.inspect,
			},
		},
	}
}

func algorithmFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "algorithm",
		Aliases:  []string{"a"},
		Usage:    "use algorithm `NAME`",
		Required: true,
	}
}

func (s *session) load(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	log.SetOutput(c.App.ErrWriter)

	opts := []runlength.Option{runlength.WithLogger(log)}
	if cfg.BlockSize > 0 {
		opts = append(opts, runlength.WithBlockSize(cfg.BlockSize))
	}

	s.cfg = cfg
	s.log = log
	s.registry = registry.Default(opts...)
	return nil
}

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}
