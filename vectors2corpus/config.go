package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	corpus "github.com/go-i2p/ltvcorpus"
)

const defaultConfigFile = "vectors2corpus.toml"

// fileConfig mirrors the command line flags. Keys left out of the file keep
// the flag defaults; flags given explicitly always win.
type fileConfig struct {
	Positive  string `toml:"positive"`
	Negative  string `toml:"negative"`
	OutputDir string `toml:"output_dir"`
	Manifest  string `toml:"manifest"`
	Jobs      int    `toml:"jobs"`
	LogLevel  string `toml:"log_level"`
}

// loadFileConfig decodes the TOML file at path. A missing file is only an
// error when it was named explicitly.
func loadFileConfig(path string, explicit bool) (fileConfig, toml.MetaData, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, toml.MetaData{}, nil
		}
		return fileConfig{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fileConfig{}, meta, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return fc, meta, nil
}

// resolve layers the config file under the flags and builds the generator
// config.
func (o *options) resolve(cmd *cobra.Command) (corpus.Config, error) {
	flags := cmd.Flags()
	fc, meta, err := loadFileConfig(o.configPath, flags.Changed("config"))
	if err != nil {
		return corpus.Config{}, err
	}

	fromFile := func(flag, key string) bool {
		return meta.IsDefined(key) && (flags.Lookup(flag) == nil || !flags.Changed(flag))
	}
	if fromFile("positive", "positive") {
		o.positive = fc.Positive
	}
	if fromFile("negative", "negative") {
		o.negative = fc.Negative
	}
	if fromFile("out", "output_dir") {
		o.outputDir = fc.OutputDir
	}
	if fromFile("manifest", "manifest") {
		o.manifest = fc.Manifest
	}
	if fromFile("jobs", "jobs") {
		o.jobs = fc.Jobs
	}
	if fromFile("log-level", "log_level") {
		o.logLevel = fc.LogLevel
	}

	logger, err := newLogger(cmd.ErrOrStderr(), o.logLevel, o.quiet)
	if err != nil {
		return corpus.Config{}, err
	}
	return corpus.Config{
		OutputDir: o.outputDir,
		Sources:   corpus.SourcesFromPaths([]string{o.positive, o.negative}),
		Jobs:      o.jobs,
		Manifest:  o.manifest,
		Logger:    logger,
	}, nil
}

func newLogger(w io.Writer, level string, quiet bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if quiet && lvl < slog.LevelWarn {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
