package corpus

import (
	"errors"
	"fmt"
	"strconv"
)

// Default input and output locations, relative to the working directory.
const (
	DefaultPositivePath = "litevectors_positive.txt"
	DefaultNegativePath = "litevectors_negative.txt"
	DefaultOutputDir    = "corpus"
)

// EntryExt is the file extension of every corpus entry.
const EntryExt = ".bin"

// ManifestSchema is the manifest format version. Bump it whenever
// ManifestEntry changes shape.
const ManifestSchema uint16 = 1

// Error constants used throughout the package. A failed Generate matches
// exactly one of these under errors.Is, unless its context was cancelled.
var (
	// ErrInputNotFound indicates that a vector file does not exist or could
	// not be read.
	ErrInputNotFound = errors.New("corpus: input not found")

	// ErrInvalidHexEncoding indicates that a data line has an odd number of
	// characters or a character outside [0-9a-fA-F].
	ErrInvalidHexEncoding = errors.New("corpus: invalid hex encoding")

	// ErrOutputWrite indicates that the output directory could not be created
	// or an entry could not be written.
	ErrOutputWrite = errors.New("corpus: output write failed")

	// ErrNoSources is returned when a Config names no input files.
	ErrNoSources = errors.New("corpus: no input sources configured")

	// ErrManifestSchema is returned when a manifest was written by an
	// incompatible version.
	ErrManifestSchema = errors.New("corpus: unsupported manifest schema")
)

// A VectorError records the failed operation and the file (and, when known,
// the 1-based line) that caused it.
type VectorError struct {
	Op   string
	Path string
	Line int
	Err  error
}

func (e *VectorError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc += ":" + strconv.Itoa(e.Line)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, loc, e.Err)
}

func (e *VectorError) Unwrap() error { return e.Err }

// wrapErr attaches a sentinel to an underlying error so errors.Is matches
// both.
func wrapErr(sentinel, err error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
