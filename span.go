package dom

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Span represents a source location of a parsed node
type Span struct {
	Offset int // Byte offset in the source
	Length int // Length in bytes
	Line   int // 1-based line number
	Column int // 1-based column number (in runes, not bytes)
}

// IsZero returns true if the span is uninitialized
func (s Span) IsZero() bool {
	return s.Offset == 0 && s.Line == 0 && s.Column == 0 && s.Length == 0
}

// End returns the end offset of the span
func (s Span) End() int {
	return s.Offset + s.Length
}

// lineIndex holds the byte offsets at which the lines of a source start.
type lineIndex []int

func newLineIndex(input string) lineIndex {
	li := lineIndex{0}
	for i := 0; ; {
		j := strings.IndexByte(input[i:], '\n')
		if j < 0 {
			return li
		}
		i += j + 1
		li = append(li, i)
	}
}

// position returns the 1-based line and rune column of the byte offset in input.
func (li lineIndex) position(input string, offset int) (line, column int) {
	offset = max(0, min(offset, len(input)))
	i := sort.Search(len(li), func(i int) bool { return li[i] > offset }) - 1
	return i + 1, utf8.RuneCountInString(input[li[i]:offset]) + 1
}
