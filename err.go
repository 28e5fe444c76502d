package dom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedChar is wrapped by a ParseError of kind UnexpectedChar.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrTagMismatch is wrapped by a ParseError of kind TagMismatch.
	ErrTagMismatch = errors.New("tag mismatch")
	// ErrUnterminated is wrapped by a ParseError of kind Unterminated.
	ErrUnterminated = errors.New("unterminated")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// UnexpectedChar means a character required by the grammar is absent at the cursor.
	UnexpectedChar ErrorKind = iota
	// TagMismatch means a closing tag name differs from its opening tag name.
	TagMismatch
	// Unterminated means the input ended while the grammar expected more characters.
	Unterminated
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	case TagMismatch:
		return "tag mismatch"
	case Unterminated:
		return "unterminated"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError aborts a parse. No partial tree is returned along with it.
type ParseError struct {
	Kind ErrorKind

	// Offset is the byte offset of the cursor at failure.
	Offset int
	Line   int
	Column int

	// Want describes what the grammar expected, Got what was found at Offset.
	Want string
	Got  string

	// Open is the opening tag name for TagMismatch errors.
	Open string
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case TagMismatch:
		msg = fmt.Sprintf("closing tag </%s> does not match <%s>", e.Got, e.Open)
	case Unterminated:
		msg = "unexpected end of input, want " + e.Want
	default:
		msg = fmt.Sprintf("unexpected %s, want %s", e.Got, e.Want)
	}
	return fmt.Sprintf("dom: %d:%d: %s", e.Line, e.Column, msg)
}

func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case TagMismatch:
		return ErrTagMismatch
	case Unterminated:
		return ErrUnterminated
	}
	return ErrUnexpectedChar
}

// Context returns the source line the error occurred on, followed by a line with a caret under
// the failing column. source must be the string passed to Parse.
func (e *ParseError) Context(source string) string {
	start := strings.LastIndexByte(source[:min(e.Offset, len(source))], '\n') + 1
	end := strings.IndexByte(source[start:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += start
	}
	line := strings.TrimSuffix(source[start:end], "\r")

	var b strings.Builder
	b.WriteString(line)
	b.WriteByte('\n')
	col := 1
	for _, r := range line {
		if col >= e.Column {
			break
		}
		// keep tabs so the caret lines up in a terminal
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		col++
	}
	b.WriteByte('^')
	return b.String()
}

func (p *parser) errorf(kind ErrorKind, want, got string) *ParseError {
	return p.errorAt(p.pos, kind, want, got)
}

func (p *parser) errorAt(offset int, kind ErrorKind, want, got string) *ParseError {
	line, col := p.lines.position(p.input, offset)
	return &ParseError{
		Kind:   kind,
		Offset: offset,
		Line:   line,
		Column: col,
		Want:   want,
		Got:    got,
	}
}

// describe formats a rune for error messages.
func describe(r rune) string {
	return fmt.Sprintf("%q", r)
}
