package corpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// A Problem is one discrepancy between the vector files and the corpus.
type Problem struct {
	Entry  string // entry file name
	Source string // vector file, empty for stale entries
	Line   int    // 0-based data line index, -1 for stale entries
	Reason string
}

func (p Problem) String() string {
	if p.Source == "" {
		return fmt.Sprintf("%s: %s", p.Entry, p.Reason)
	}
	return fmt.Sprintf("%s (%s:%d): %s", p.Entry, p.Source, p.Line+1, p.Reason)
}

// A Report is the result of Verify.
type Report struct {
	// Checked is the number of entries the sources describe.
	Checked  int
	Problems []Problem
}

// OK reports whether the corpus matched the sources exactly.
func (r Report) OK() bool { return len(r.Problems) == 0 }

// Verify checks the corpus in c.OutputDir against the vectors in c.Sources.
// It never writes. Missing, altered and stale entries are all collected into
// the report; only unreadable or malformed sources fail the call.
func Verify(ctx context.Context, c Config) (Report, error) {
	if len(c.Sources) == 0 {
		return Report{}, ErrNoSources
	}
	dir := c.outputDir()
	var r Report

	for _, src := range c.Sources {
		vectors, err := ReadVectors(src.Path)
		if err != nil {
			return r, err
		}
		for _, v := range vectors {
			if err := ctx.Err(); err != nil {
				return r, err
			}
			name := EntryName(r.Checked)
			r.Checked++
			got, err := os.ReadFile(filepath.Join(dir, name))
			switch {
			case errors.Is(err, fs.ErrNotExist):
				r.Problems = append(r.Problems, Problem{Entry: name, Source: v.Source, Line: v.Line, Reason: "missing"})
			case err != nil:
				r.Problems = append(r.Problems, Problem{Entry: name, Source: v.Source, Line: v.Line, Reason: err.Error()})
			case !bytes.Equal(got, v.Data):
				r.Problems = append(r.Problems, Problem{
					Entry:  name,
					Source: v.Source,
					Line:   v.Line,
					Reason: fmt.Sprintf("content mismatch: want %d bytes, have %d", len(v.Data), len(got)),
				})
			}
		}
	}

	stale, err := staleEntries(dir, r.Checked)
	if err != nil {
		return r, err
	}
	for _, name := range stale {
		r.Problems = append(r.Problems, Problem{Entry: name, Line: -1, Reason: "stale entry from a previous run"})
	}
	return r, nil
}

// staleEntries lists entry files numbered n or above, in numeric order.
func staleEntries(dir string, n int) ([]string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &VectorError{Op: "read", Path: dir, Err: err}
	}
	type numbered struct {
		name string
		i    int
	}
	var found []numbered
	for _, de := range des {
		if de.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(de.Name(), EntryExt)
		if !ok {
			continue
		}
		i, err := strconv.Atoi(stem)
		if err != nil || i < n || EntryName(i) != de.Name() {
			continue
		}
		found = append(found, numbered{de.Name(), i})
	}
	sort.Slice(found, func(a, b int) bool { return found[a].i < found[b].i })
	names := make([]string, len(found))
	for k, f := range found {
		names[k] = f.name
	}
	return names, nil
}
