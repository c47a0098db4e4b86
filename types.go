package corpus

import "strconv"

// A Source is a vector file: label lines alternating with hex data lines,
// starting with a label.
type Source struct {
	// Path is the file location.
	Path string
}

// DefaultSources returns the positive vectors followed by the negative
// vectors. The order only matters for numbering.
func DefaultSources() []Source {
	return []Source{
		{Path: DefaultPositivePath},
		{Path: DefaultNegativePath},
	}
}

// SourcesFromPaths converts paths to Sources, preserving order.
func SourcesFromPaths(paths []string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Path: p}
	}
	return sources
}

// A Vector is one decoded data line.
type Vector struct {
	// Source is the path of the file the vector was read from.
	Source string

	// Line is the 0-based index of the data line within Source. It is always
	// odd.
	Line int

	// Data is the decoded payload.
	Data []byte
}

// An Entry is a vector that has been assigned its place in the corpus.
type Entry struct {
	Vector

	// Index is the entry's position across all sources, starting at 0.
	Index int

	// Name is the file name within the output directory.
	Name string
}

// EntryName returns the file name of the entry at index i.
func EntryName(i int) string {
	return strconv.Itoa(i) + EntryExt
}
