package corpus

import "log/slog"

// A Config provides the details necessary to build a corpus. It is never
// modified by this package, and can be reused.
type Config struct {
	// OutputDir is the directory entries are written to. It is created,
	// along with any missing parents, if absent. Existing contents are left
	// in place. If empty, DefaultOutputDir is used.
	OutputDir string

	// Sources are the vector files, in the order their entries are numbered.
	Sources []Source

	// Jobs bounds how many sources are decoded concurrently. Zero or less
	// means GOMAXPROCS; one decodes serially. Numbering is unaffected.
	Jobs int

	// Manifest is an optional path for a provenance manifest. If empty, no
	// manifest is written.
	Manifest string

	// Logger receives progress records. If nil, logging is discarded.
	Logger *slog.Logger
}

// DefaultConfig returns the conventional layout: the positive and negative
// vector files in the working directory and a "corpus" subdirectory.
func DefaultConfig() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Sources:   DefaultSources(),
	}
}

func (c Config) outputDir() string {
	if c.OutputDir == "" {
		return DefaultOutputDir
	}
	return c.OutputDir
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
