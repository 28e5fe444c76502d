package dom

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// A parser is a recursive-descent parser over a single source string. Each grammar method
// consumes input from pos and returns a *ParseError on the first structural violation; there is
// no recovery.
type parser struct {
	// input is the whole source, never modified.
	input string
	// pos is the byte offset of the cursor.
	pos int
	// lines indexes line starts of input for error and span positions.
	lines lineIndex
}

// Parse parses source and returns the root of the resulting tree. If the source consists of
// exactly one top-level node, that node is the root. Otherwise the top-level nodes are wrapped in
// an "html" element without attributes.
//
// Any structural error aborts the parse; the returned error is then a *ParseError. This includes
// a closing tag left over at the top level, so "a</b>" fails instead of yielding the text "a".
func Parse(source string) (*Node, error) {
	p := &parser{
		input: source,
		lines: newLineIndex(source),
	}

	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	// The top-level sequence only stops early on a closing tag with nothing to close.
	if !p.eof() {
		return nil, p.errorf(UnexpectedChar, "element or text", fmt.Sprintf("%q", "</"))
	}

	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return NewElement("html", AttrMap{}, nodes), nil
}

// peek returns the current character without consuming it. It returns false at the end of input.
func (p *parser) peek() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r, true
}

// next returns the current character and moves the cursor to the start of the following one.
func (p *parser) next() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	return r, true
}

func (p *parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

// expect consumes want or fails without moving the cursor.
func (p *parser) expect(want rune) error {
	r, ok := p.peek()
	if !ok {
		return p.errorf(Unterminated, describe(want), "")
	}
	if r != want {
		return p.errorf(UnexpectedChar, describe(want), describe(r))
	}
	p.next()
	return nil
}

// consumeWhile consumes the longest run of characters satisfying test.
func (p *parser) consumeWhile(test func(rune) bool) string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !test(r) {
			break
		}
		p.pos += size
	}
	return p.input[start:p.pos]
}

func (p *parser) consumeWhitespace() {
	p.consumeWhile(isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isNameChar(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9'
}

// parseTagName consumes a run of name characters, which may be empty. Callers that require a
// name use parseName, which rejects the empty run.
func (p *parser) parseTagName() string {
	return p.consumeWhile(isNameChar)
}

// parseName is parseTagName for positions where an empty name is an error.
func (p *parser) parseName(what string) (string, error) {
	if name := p.parseTagName(); name != "" {
		return name, nil
	}
	r, ok := p.peek()
	if !ok {
		return "", p.errorf(Unterminated, what, "")
	}
	return "", p.errorf(UnexpectedChar, what, describe(r))
}

// parseAttrValue parses a value quoted with either " or '.
func (p *parser) parseAttrValue() (string, error) {
	open, ok := p.peek()
	if !ok {
		return "", p.errorf(Unterminated, "quote", "")
	}
	if open != '"' && open != '\'' {
		return "", p.errorf(UnexpectedChar, "quote", describe(open))
	}
	p.next()

	value := p.consumeWhile(func(r rune) bool { return r != open })
	if err := p.expect(open); err != nil {
		return "", err
	}
	return value, nil
}

// parseAttr parses a single name="value" pair.
func (p *parser) parseAttr() (string, string, error) {
	name, err := p.parseName("attribute name")
	if err != nil {
		return "", "", err
	}
	if err := p.expect('='); err != nil {
		return "", "", err
	}
	value, err := p.parseAttrValue()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

// parseAttributes parses whitespace separated attributes up to and including the '>' closing the
// start tag. A repeated name overwrites the earlier value.
func (p *parser) parseAttributes() (AttrMap, error) {
	attrs := AttrMap{}
	for {
		p.consumeWhitespace()
		r, ok := p.peek()
		if !ok {
			return nil, p.errorf(Unterminated, describe('>'), "")
		}
		if r == '>' {
			p.next()
			return attrs, nil
		}
		name, value, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		attrs[name] = value
	}
}

// parseElement parses an element including its start tag, contents, and closing tag.
func (p *parser) parseElement() (*Node, error) {
	start := p.pos

	// Start tag.
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	tag, err := p.parseName("tag name")
	if err != nil {
		return nil, err
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	// Contents.
	children, err := p.parseNodes()
	if err != nil {
		return nil, err
	}

	// Closing tag.
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	if err := p.expect('/'); err != nil {
		return nil, err
	}
	closeAt := p.pos
	name, err := p.parseName("tag name")
	if err != nil {
		return nil, err
	}
	if name != tag {
		e := p.errorAt(closeAt, TagMismatch, tag, name)
		e.Open = tag
		return nil, e
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}

	n := NewElement(tag, attrs, children)
	n.Span = p.span(start)
	return n, nil
}

// parseText parses a run of characters up to the next '<'. The run may be empty.
func (p *parser) parseText() *Node {
	start := p.pos
	n := NewText(p.consumeWhile(func(r rune) bool { return r != '<' }))
	n.Span = p.span(start)
	return n
}

func (p *parser) parseNode() (*Node, error) {
	if r, ok := p.peek(); ok && r == '<' {
		return p.parseElement()
	}
	return p.parseText(), nil
}

// parseNodes parses a sequence of sibling nodes up to the end of input or a closing tag.
// Whitespace between nodes is skipped.
func (p *parser) parseNodes() ([]*Node, error) {
	var nodes []*Node
	for {
		p.consumeWhitespace()
		if p.eof() || p.startsWith("</") {
			return nodes, nil
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

// span returns the source span from start to the cursor.
func (p *parser) span(start int) Span {
	line, col := p.lines.position(p.input, start)
	return Span{
		Offset: start,
		Length: p.pos - start,
		Line:   line,
		Column: col,
	}
}
