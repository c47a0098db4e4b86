package corpus

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	. "gopkg.in/check.v1"
)

type ManifestSuite struct{}

var _ = Suite(&ManifestSuite{})

func (s *ManifestSuite) TestRoundTrip(c *C) {
	m := NewManifest()
	c.Assert(m.Add(Entry{Vector: Vector{Source: "pos.txt", Line: 1, Data: []byte{1, 2, 3}}, Index: 0, Name: "0.bin"}), IsNil)
	c.Assert(m.Add(Entry{Vector: Vector{Source: "neg.txt", Line: 5}, Index: 1, Name: "1.bin"}), IsNil)

	path := filepath.Join(c.MkDir(), "m.mp")
	c.Assert(WriteManifest(path, m), IsNil)

	got, err := ReadManifest(path)
	c.Assert(err, IsNil)
	c.Assert(got, DeepEquals, m)
	c.Check(got.Entries[0].Matches([]byte{1, 2, 3}), Equals, true)
	c.Check(got.Entries[0].Matches([]byte{1, 2, 4}), Equals, false)
	c.Check(got.Entries[1].Matches(nil), Equals, true)
}

func (s *ManifestSuite) TestWriteReplacesExisting(c *C) {
	path := filepath.Join(c.MkDir(), "m.mp")
	c.Assert(os.WriteFile(path, []byte("old"), 0o644), IsNil)
	c.Assert(WriteManifest(path, NewManifest()), IsNil)

	got, err := ReadManifest(path)
	c.Assert(err, IsNil)
	c.Check(got.Entries, HasLen, 0)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".manifest-*"))
	c.Assert(err, IsNil)
	c.Check(leftovers, HasLen, 0)
}

func (s *ManifestSuite) TestWrittenWorldReadable(c *C) {
	path := filepath.Join(c.MkDir(), "m.mp")
	c.Assert(WriteManifest(path, NewManifest()), IsNil)

	fi, err := os.Stat(path)
	c.Assert(err, IsNil)
	c.Check(fi.Mode().Perm(), Equals, os.FileMode(0o644))
}

func (s *ManifestSuite) TestSchemaMismatch(c *C) {
	raw, err := msgpack.Marshal(&Manifest{Schema: ManifestSchema + 1})
	c.Assert(err, IsNil)
	path := filepath.Join(c.MkDir(), "m.mp")
	c.Assert(os.WriteFile(path, raw, 0o644), IsNil)

	_, err = ReadManifest(path)
	c.Assert(errors.Is(err, ErrManifestSchema), Equals, true)
}

func (s *ManifestSuite) TestReadMissing(c *C) {
	_, err := ReadManifest(filepath.Join(c.MkDir(), "none.mp"))
	c.Assert(errors.Is(err, ErrInputNotFound), Equals, true)
}

func (s *ManifestSuite) TestCheck(c *C) {
	dir := c.MkDir()
	m := NewManifest()
	for i, data := range [][]byte{{0xaa}, {0xbb}, {0xcc}} {
		e := Entry{Vector: Vector{Source: "v.txt", Line: 2*i + 1, Data: data}, Index: i, Name: EntryName(i)}
		c.Assert(writeEntry(dir, e), IsNil)
		c.Assert(m.Add(e), IsNil)
	}
	c.Assert(m.Check(dir), HasLen, 0)

	c.Assert(os.WriteFile(filepath.Join(dir, "1.bin"), []byte{0xbc}, 0o644), IsNil)
	c.Assert(os.Remove(filepath.Join(dir, "2.bin")), IsNil)

	problems := m.Check(dir)
	c.Assert(problems, HasLen, 2)
	c.Check(problems[0], DeepEquals, Problem{Entry: "1.bin", Source: "v.txt", Line: 3, Reason: "digest mismatch"})
	c.Check(problems[1].Reason, Equals, "missing")
}
