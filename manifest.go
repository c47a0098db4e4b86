package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"
)

// DigestSize is the length of an entry digest (BLAKE2b-256).
const DigestSize = blake2b.Size256

// A Manifest records where every corpus entry came from. The corpus itself
// carries no provenance, so this is the only link from an entry back to its
// vector line.
type Manifest struct {
	Schema  uint16          `msgpack:"schema"`
	Entries []ManifestEntry `msgpack:"entries"`
}

// A ManifestEntry describes one corpus file.
type ManifestEntry struct {
	Name   string           `msgpack:"name"`
	Source string           `msgpack:"source"`
	Line   uint32           `msgpack:"line"` // 0-based line index in Source
	Size   uint32           `msgpack:"size"`
	Digest [DigestSize]byte `msgpack:"digest"`
}

// NewManifest returns an empty manifest at the current schema.
func NewManifest() *Manifest {
	return &Manifest{Schema: ManifestSchema}
}

// Add appends e to the manifest.
func (m *Manifest) Add(e Entry) error {
	line, err := safecast.Conv[uint32](e.Line)
	if err != nil {
		return fmt.Errorf("manifest: line %d of %s: %w", e.Line, e.Source, err)
	}
	size, err := safecast.Conv[uint32](len(e.Data))
	if err != nil {
		return fmt.Errorf("manifest: entry %s: %w", e.Name, err)
	}
	m.Entries = append(m.Entries, ManifestEntry{
		Name:   e.Name,
		Source: e.Source,
		Line:   line,
		Size:   size,
		Digest: blake2b.Sum256(e.Data),
	})
	return nil
}

// Matches reports whether data is the content this entry was written with.
func (me ManifestEntry) Matches(data []byte) bool {
	if uint64(len(data)) != uint64(me.Size) {
		return false
	}
	sum := blake2b.Sum256(data)
	return bytes.Equal(sum[:], me.Digest[:])
}

// WriteManifest encodes m to path, replacing any existing file atomically.
func WriteManifest(path string, m *Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &VectorError{Op: "mkdir", Path: dir, Err: wrapErr(ErrOutputWrite, err)}
	}
	f, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return &VectorError{Op: "write", Path: path, Err: wrapErr(ErrOutputWrite, err)}
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return &VectorError{Op: "write", Path: path, Err: wrapErr(ErrOutputWrite, err)}
	}
	if err := msgpack.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return &VectorError{Op: "write", Path: path, Err: wrapErr(ErrOutputWrite, err)}
	}
	if err := f.Close(); err != nil {
		return &VectorError{Op: "write", Path: path, Err: wrapErr(ErrOutputWrite, err)}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &VectorError{Op: "write", Path: path, Err: wrapErr(ErrOutputWrite, err)}
	}
	return nil
}

// ReadManifest decodes the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &VectorError{Op: "read", Path: path, Err: wrapErr(ErrInputNotFound, err)}
	}
	var m Manifest
	if err := msgpack.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if m.Schema != ManifestSchema {
		return nil, fmt.Errorf("manifest %s: schema %d: %w", path, m.Schema, ErrManifestSchema)
	}
	return &m, nil
}

// Check compares the entries in dir against the manifest and returns one
// Problem per entry that is missing or whose content changed.
func (m *Manifest) Check(dir string) []Problem {
	var problems []Problem
	for _, me := range m.Entries {
		p := Problem{Entry: me.Name, Source: me.Source, Line: int(me.Line)}
		data, err := os.ReadFile(filepath.Join(dir, me.Name))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			p.Reason = "missing"
		case err != nil:
			p.Reason = err.Error()
		case !me.Matches(data):
			p.Reason = "digest mismatch"
		default:
			continue
		}
		problems = append(problems, p)
	}
	return problems
}
