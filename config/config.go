// Package config loads settings for the squish command from an optional YAML
// file and SQUISH_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/report"
	"github.com/dargueta/squish/schemes/runlength"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "SQUISH"

// Keys
const (
	LogLevel         = "log_level"
	Format           = "format"
	Algorithms       = "algorithms"
	Dump             = "dump"
	BlockSize        = "block_size"
	MetricsNamespace = "metrics_namespace"
)

const (
	DefaultLogLevel         = "warn"
	DefaultFormat           = string(report.FormatTable)
	DefaultMetricsNamespace = "squish"
)

// Config holds every setting the command reads.
type Config struct {
	LogLevel   string   `mapstructure:"log_level"`
	Format     string   `mapstructure:"format"`
	Algorithms []string `mapstructure:"algorithms"`
	Dump       bool     `mapstructure:"dump"`
	// BlockSize is passed to the runlength codec. Zero means the largest size
	// a frame can hold.
	BlockSize        int    `mapstructure:"block_size"`
	MetricsNamespace string `mapstructure:"metrics_namespace"`
}

// New returns a viper instance with the defaults set and the environment bound,
// but no file read.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(LogLevel, DefaultLogLevel)
	v.SetDefault(Format, DefaultFormat)
	v.SetDefault(Algorithms, []string{})
	v.SetDefault(Dump, false)
	v.SetDefault(BlockSize, 0)
	v.SetDefault(MetricsNamespace, DefaultMetricsNamespace)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. `path` may be empty, in which case only the
// defaults and environment are used. A file that was asked for but can't be
// read is an error.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by `v`.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, squish.ErrInvalidArgument.Wrap(err)
	}

	// Environment variables arrive as a single string.
	if len(cfg.Algorithms) == 1 && strings.ContainsAny(cfg.Algorithms[0], ", ") {
		cfg.Algorithms = strings.FieldsFunc(cfg.Algorithms[0], func(r rune) bool {
			return r == ',' || r == ' '
		})
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings that can be checked without a registry.
func (cfg Config) Validate() error {
	var result *multierror.Error

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		result = multierror.Append(result, squish.ErrInvalidArgument.Wrap(err))
	}
	if _, err := report.ParseFormat(cfg.Format); err != nil {
		result = multierror.Append(result, err)
	}
	if cfg.BlockSize < 0 || cfg.BlockSize > runlength.MaxRunLength {
		result = multierror.Append(result, squish.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("block size %d not in [0, %d]", cfg.BlockSize, runlength.MaxRunLength)))
	}
	return result.ErrorOrNil()
}

// Logger creates a logger at the configured level.
func (cfg Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, squish.ErrInvalidArgument.Wrap(err)
	}

	log := logrus.New()
	log.SetLevel(level)
	return log, nil
}
