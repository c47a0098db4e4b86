package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"
)

type VerifySuite struct {
	cfg Config
}

var _ = Suite(&VerifySuite{})

func (s *VerifySuite) SetUpTest(c *C) {
	dir := c.MkDir()
	pos := filepath.Join(dir, "pos.txt")
	neg := filepath.Join(dir, "neg.txt")
	c.Assert(os.WriteFile(pos, []byte("l\n01\nl\n02\n"), 0o644), IsNil)
	c.Assert(os.WriteFile(neg, []byte("l\n03\n"), 0o644), IsNil)
	s.cfg = Config{OutputDir: filepath.Join(dir, "corpus"), Sources: SourcesFromPaths([]string{pos, neg})}
}

func (s *VerifySuite) generate(c *C) {
	g, err := NewGenerator(s.cfg)
	c.Assert(err, IsNil)
	_, err = g.Generate(context.Background())
	c.Assert(err, IsNil)
}

func (s *VerifySuite) TestFreshCorpusVerifies(c *C) {
	s.generate(c)
	r, err := Verify(context.Background(), s.cfg)
	c.Assert(err, IsNil)
	c.Check(r.Checked, Equals, 3)
	c.Check(r.OK(), Equals, true)
}

func (s *VerifySuite) TestDetectsDamage(c *C) {
	s.generate(c)
	out := s.cfg.OutputDir
	c.Assert(os.WriteFile(filepath.Join(out, "0.bin"), []byte{0x01, 0x01}, 0o644), IsNil)
	c.Assert(os.Remove(filepath.Join(out, "2.bin")), IsNil)
	c.Assert(os.WriteFile(filepath.Join(out, "11.bin"), nil, 0o644), IsNil)
	c.Assert(os.WriteFile(filepath.Join(out, "4.bin"), nil, 0o644), IsNil)
	c.Assert(os.WriteFile(filepath.Join(out, "notes.txt"), nil, 0o644), IsNil)

	r, err := Verify(context.Background(), s.cfg)
	c.Assert(err, IsNil)
	c.Assert(r.Problems, HasLen, 4)
	c.Check(r.Problems[0].Entry, Equals, "0.bin")
	c.Check(r.Problems[0].Reason, Equals, "content mismatch: want 1 bytes, have 2")
	c.Check(r.Problems[1].Entry, Equals, "2.bin")
	c.Check(r.Problems[1].Reason, Equals, "missing")
	c.Check(r.Problems[2].Entry, Equals, "4.bin")
	c.Check(r.Problems[3].Entry, Equals, "11.bin")
	c.Check(r.Problems[3].String(), Equals, "11.bin: stale entry from a previous run")
}

func (s *VerifySuite) TestMissingCorpus(c *C) {
	r, err := Verify(context.Background(), s.cfg)
	c.Assert(err, IsNil)
	c.Check(r.Problems, HasLen, 3)
}

func (s *VerifySuite) TestBadSourceFails(c *C) {
	c.Assert(os.WriteFile(s.cfg.Sources[1].Path, []byte("l\nxyz\n"), 0o644), IsNil)
	_, err := Verify(context.Background(), s.cfg)
	c.Assert(errors.Is(err, ErrInvalidHexEncoding), Equals, true)
}
