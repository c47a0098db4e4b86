package corpus

import (
	"encoding/hex"
	"os"
	"unicode/utf8"
)

// SplitLines splits data into lines. "\r\n" and each of "\n", "\r", "\v",
// "\f", U+001C..U+001E, U+0085, U+2028 and U+2029 end a line. A trailing line
// break does not produce an empty final line.
func SplitLines(data []byte) []string {
	s := string(data)
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// DataLines returns the lines at odd 0-based indices, in order. A trailing
// label without a data line is dropped.
func DataLines(lines []string) []string {
	data := make([]string, 0, len(lines)/2)
	for i := 1; i < len(lines); i += 2 {
		data = append(data, lines[i])
	}
	return data
}

// DecodeLine decodes a hex data line. Upper and lower case digits are both
// accepted; anything else, or an odd length, is ErrInvalidHexEncoding.
func DecodeLine(line string) ([]byte, error) {
	b, err := hex.DecodeString(line)
	if err != nil {
		return nil, wrapErr(ErrInvalidHexEncoding, err)
	}
	return b, nil
}

// ReadVectors reads and decodes every data line of the file at path.
//
// On a decode failure the vectors preceding the bad line are returned along
// with the error, so a caller can write exactly what a line-by-line pass
// would have written before stopping.
func ReadVectors(path string) ([]Vector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &VectorError{Op: "read", Path: path, Err: wrapErr(ErrInputNotFound, err)}
	}
	lines := DataLines(SplitLines(raw))
	vectors := make([]Vector, 0, len(lines))
	for i, line := range lines {
		n := 2*i + 1
		data, err := DecodeLine(line)
		if err != nil {
			return vectors, &VectorError{Op: "decode", Path: path, Line: n + 1, Err: err}
		}
		vectors = append(vectors, Vector{Source: path, Line: n, Data: data})
	}
	return vectors, nil
}
