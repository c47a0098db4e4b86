// Package corpus turns LiteVector test vector files into a fuzzing corpus.
//
// A vector file alternates label lines and hex data lines, starting with a
// label. Every data line is decoded and written to its own file, named by a
// counter shared across all input files: 0.bin, 1.bin, and so on. Entries
// from the first file always come before entries from the second.
package corpus

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// A Generator writes the corpus described by a Config. It holds no state
// between runs; every call to Generate starts numbering at 0.
type Generator struct {
	cfg Config
}

// NewGenerator validates c and returns a Generator for it.
func NewGenerator(c Config) (*Generator, error) {
	if len(c.Sources) == 0 {
		return nil, ErrNoSources
	}
	return &Generator{cfg: c}, nil
}

// Generate writes the corpus for the given input files into outputDir using
// the default settings, and returns the number of entries written.
func Generate(outputDir string, inputPaths []string) (int, error) {
	g, err := NewGenerator(Config{
		OutputDir: outputDir,
		Sources:   SourcesFromPaths(inputPaths),
	})
	if err != nil {
		return 0, err
	}
	return g.Generate(context.Background())
}

// decoded is the outcome of reading one source: the valid prefix of its
// vectors and the error that stopped it, if any.
type decoded struct {
	vectors []Vector
	err     error
}

// Generate creates the output directory, decodes every source and writes one
// entry per data line. It returns the number of entries written, which on
// failure is the number written before the first error.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	log := g.cfg.logger()
	dir := g.cfg.outputDir()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, &VectorError{Op: "mkdir", Path: dir, Err: wrapErr(ErrOutputWrite, err)}
	}

	var manifest *Manifest
	if g.cfg.Manifest != "" {
		manifest = NewManifest()
	}

	counter := 0
	for _, d := range g.decodeAll(ctx) {
		for _, v := range d.vectors {
			if err := ctx.Err(); err != nil {
				return counter, err
			}
			e := Entry{Vector: v, Index: counter, Name: EntryName(counter)}
			written, err := commitEntry(dir, e, manifest)
			counter += written
			if err != nil {
				return counter, err
			}
		}
		if d.err != nil {
			return counter, d.err
		}
	}

	if manifest != nil {
		if err := WriteManifest(g.cfg.Manifest, manifest); err != nil {
			return counter, err
		}
		log.Debug("manifest written", "path", g.cfg.Manifest, "entries", len(manifest.Entries))
	}
	log.Info("corpus generated", "dir", dir, "entries", counter)
	return counter, nil
}

// decodeAll reads the sources concurrently. Results are indexed by source so
// numbering can be assigned afterwards in source order.
func (g *Generator) decodeAll(ctx context.Context) []decoded {
	log := g.cfg.logger()
	out := make([]decoded, len(g.cfg.Sources))

	var eg errgroup.Group
	eg.SetLimit(g.jobs())
	for i, src := range g.cfg.Sources {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i] = decoded{err: err}
				return nil
			}
			vectors, err := ReadVectors(src.Path)
			out[i] = decoded{vectors: vectors, err: err}
			log.Debug("source decoded", "path", src.Path, "vectors", len(vectors), "failed", err != nil)
			return nil
		})
	}
	// Failures travel in out; the group only bounds concurrency.
	_ = eg.Wait()
	return out
}

func (g *Generator) jobs() int {
	n := g.cfg.Jobs
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return min(n, len(g.cfg.Sources))
}

// commitEntry writes e and records it in m when m is non-nil. It returns the
// number of files it put on disk, which is 1 even when recording fails.
func commitEntry(dir string, e Entry, m *Manifest) (int, error) {
	if err := writeEntry(dir, e); err != nil {
		return 0, err
	}
	if m != nil {
		if err := m.Add(e); err != nil {
			return 1, err
		}
	}
	return 1, nil
}

func writeEntry(dir string, e Entry) error {
	path := filepath.Join(dir, e.Name)
	if err := os.WriteFile(path, e.Data, 0o644); err != nil {
		return &VectorError{Op: "write", Path: path, Err: wrapErr(ErrOutputWrite, err)}
	}
	return nil
}
