package dom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// treeOpts compares trees structurally, ignoring source spans and nil vs empty collections.
var treeOpts = cmp.Options{
	cmpopts.IgnoreFields(Node{}, "Span"),
	cmpopts.EquateEmpty(),
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Node
	}{
		{
			name: "single element",
			src:  `<a></a>`,
			want: NewElement("a", nil, nil),
		},
		{
			name: "attributes",
			src:  `<a x="1" y="2"></a>`,
			want: NewElement("a", AttrMap{"x": "1", "y": "2"}, nil),
		},
		{
			name: "duplicate attribute last wins",
			src:  `<a x="1" x="2"></a>`,
			want: NewElement("a", AttrMap{"x": "2"}, nil),
		},
		{
			name: "single quoted value",
			src:  `<a x='say "hi"'></a>`,
			want: NewElement("a", AttrMap{"x": `say "hi"`}, nil),
		},
		{
			name: "empty value",
			src:  `<a x=""></a>`,
			want: NewElement("a", AttrMap{"x": ""}, nil),
		},
		{
			name: "attributes across lines",
			src:  "<a\n\tx=\"1\"\r\n  y='2'\n>t</a>",
			want: NewElement("a", AttrMap{"x": "1", "y": "2"}, []*Node{NewText("t")}),
		},
		{
			name: "text runs",
			src:  `<a>hello<b></b>world</a>`,
			want: NewElement("a", nil, []*Node{
				NewText("hello"),
				NewElement("b", nil, nil),
				NewText("world"),
			}),
		},
		{
			name: "nested elements",
			src:  `<a><b><c></c></b></a>`,
			want: NewElement("a", nil, []*Node{
				NewElement("b", nil, []*Node{
					NewElement("c", nil, nil),
				}),
			}),
		},
		{
			name: "whitespace between tags",
			src:  "<ul>\n  <li>x</li>\n  <li>y</li>\n</ul>",
			want: NewElement("ul", nil, []*Node{
				NewElement("li", nil, []*Node{NewText("x")}),
				NewElement("li", nil, []*Node{NewText("y")}),
			}),
		},
		{
			name: "text keeps trailing whitespace",
			src:  `<p>hello <b>w</b> there</p>`,
			want: NewElement("p", nil, []*Node{
				NewText("hello "),
				NewElement("b", nil, []*Node{NewText("w")}),
				NewText("there"),
			}),
		},
		{
			name: "multiple roots",
			src:  `<a></a> <b></b>`,
			want: NewElement("html", AttrMap{}, []*Node{
				NewElement("a", nil, nil),
				NewElement("b", nil, nil),
			}),
		},
		{
			name: "top-level text and element",
			src:  `hi <b></b>`,
			want: NewElement("html", AttrMap{}, []*Node{
				NewText("hi "),
				NewElement("b", nil, nil),
			}),
		},
		{
			name: "empty input",
			src:  ``,
			want: NewElement("html", AttrMap{}, nil),
		},
		{
			name: "whitespace only",
			src:  " \t\r\n ",
			want: NewElement("html", AttrMap{}, nil),
		},
		{
			name: "text only",
			src:  `hello`,
			want: NewText("hello"),
		},
		{
			name: "non-ASCII text and values",
			src:  `<p lang="日本">こんにちは, wörld</p>`,
			want: NewElement("p", AttrMap{"lang": "日本"}, []*Node{NewText("こんにちは, wörld")}),
		},
		{
			name: "case sensitive tags",
			src:  `<Div ID="x"></Div>`,
			want: NewElement("Div", AttrMap{"ID": "x"}, nil),
		},
		{
			name: "digits in names",
			src:  `<h1 data2="v">t</h1>`,
			want: NewElement("h1", AttrMap{"data2": "v"}, []*Node{NewText("t")}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, treeOpts); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		kind   ErrorKind
		offset int
		line   int
		column int
		want   string
		got    string
	}{
		{
			name: "tag mismatch", src: `<a></b>`,
			kind: TagMismatch, offset: 5, line: 1, column: 6, want: "a", got: "b",
		},
		{
			name: "nested tag mismatch", src: "<a>\n  <b>\n</a>",
			kind: TagMismatch, offset: 12, line: 3, column: 3, want: "b", got: "a",
		},
		{
			name: "unquoted value", src: `<a x=1></a>`,
			kind: UnexpectedChar, offset: 5, line: 1, column: 6, want: "quote", got: `'1'`,
		},
		{
			name: "missing equals", src: `<a x></a>`,
			kind: UnexpectedChar, offset: 4, line: 1, column: 5, want: `'='`, got: `'>'`,
		},
		{
			name: "empty tag name", src: `<></>`,
			kind: UnexpectedChar, offset: 1, line: 1, column: 2, want: "tag name", got: `'>'`,
		},
		{
			name: "bad attribute name", src: `<a -x="1"></a>`,
			kind: UnexpectedChar, offset: 3, line: 1, column: 4, want: "attribute name", got: `'-'`,
		},
		{
			name: "empty attribute name", src: `<a ="x"></a>`,
			kind: UnexpectedChar, offset: 3, line: 1, column: 4, want: "attribute name", got: `'='`,
		},
		{
			name: "space in closing tag", src: `<a></a >`,
			kind: UnexpectedChar, offset: 6, line: 1, column: 7, want: `'>'`, got: `' '`,
		},
		{
			name: "stray closing tag", src: `</a>`,
			kind: UnexpectedChar, offset: 0, line: 1, column: 1, want: "element or text", got: `"</"`,
		},
		{
			name: "stray closing tag after root", src: `<a></a></b>`,
			kind: UnexpectedChar, offset: 7, line: 1, column: 8, want: "element or text", got: `"</"`,
		},
		{
			name: "stray closing tag after text", src: `a</b>`,
			kind: UnexpectedChar, offset: 1, line: 1, column: 2, want: "element or text", got: `"</"`,
		},
		{
			name: "unterminated value", src: `<a x="1></a>`,
			kind: Unterminated, offset: 12, line: 1, column: 13, want: `'"'`,
		},
		{
			name: "unterminated start tag", src: `<a`,
			kind: Unterminated, offset: 2, line: 1, column: 3, want: `'>'`,
		},
		{
			name: "unterminated after equals", src: `<a x=`,
			kind: Unterminated, offset: 5, line: 1, column: 6, want: "quote",
		},
		{
			name: "unclosed element", src: `<a>`,
			kind: Unterminated, offset: 3, line: 1, column: 4, want: `'<'`,
		},
		{
			name: "unclosed element with text", src: "<a>\ntext",
			kind: Unterminated, offset: 8, line: 2, column: 5, want: `'<'`,
		},
		{
			name: "unterminated closing tag", src: `<a></a`,
			kind: Unterminated, offset: 6, line: 1, column: 7, want: `'>'`,
		},
		{
			name: "unterminated closing tag name", src: `<a></`,
			kind: Unterminated, offset: 5, line: 1, column: 6, want: "tag name",
		},
		{
			name: "column counts runes", src: `<p>éé</q>`,
			kind: TagMismatch, offset: 9, line: 1, column: 8, want: "p", got: "q",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.Nil(t, got)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, tt.kind, perr.Kind)
			require.Equal(t, tt.offset, perr.Offset)
			require.Equal(t, tt.line, perr.Line)
			require.Equal(t, tt.column, perr.Column)
			require.Equal(t, tt.want, perr.Want)
			require.Equal(t, tt.got, perr.Got)
		})
	}
}

func TestParseTagMismatchOpen(t *testing.T) {
	_, err := Parse(`<a></b>`)
	require.ErrorIs(t, err, ErrTagMismatch)
	require.False(t, errors.Is(err, ErrUnexpectedChar))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "a", perr.Open)
	require.EqualError(t, err, "dom: 1:6: closing tag </b> does not match <a>")
}

func TestParseSpans(t *testing.T) {
	src := "<a>\n  <b x=\"1\">hi</b>\n</a>"
	root, err := Parse(src)
	require.NoError(t, err)

	require.Equal(t, Span{Offset: 0, Length: 26, Line: 1, Column: 1}, root.Span)
	require.Len(t, root.Children, 1)

	b := root.Children[0]
	require.Equal(t, Span{Offset: 6, Length: 15, Line: 2, Column: 3}, b.Span)
	require.Equal(t, `<b x="1">hi</b>`, src[b.Span.Offset:b.Span.End()])

	hi := b.Children[0]
	require.Equal(t, Span{Offset: 15, Length: 2, Line: 2, Column: 12}, hi.Span)
}

func TestParseSyntheticRootHasNoSpan(t *testing.T) {
	root, err := Parse(`<a></a><b></b>`)
	require.NoError(t, err)
	require.True(t, root.Span.IsZero())
	require.Equal(t, 7, root.Children[1].Span.Offset)
}

func TestConsumeWhileStepsByRune(t *testing.T) {
	p := &parser{input: "ü€x<", lines: newLineIndex("ü€x<")}

	r, ok := p.next()
	require.True(t, ok)
	require.Equal(t, 'ü', r)
	require.Equal(t, 2, p.pos)

	rest := p.consumeWhile(func(r rune) bool { return r != '<' })
	require.Equal(t, "€x", rest)
	require.True(t, p.startsWith("<"))

	p.next()
	require.True(t, p.eof())
	_, ok = p.peek()
	require.False(t, ok)
}

func TestParseTextEmptyRun(t *testing.T) {
	p := &parser{input: "<", lines: newLineIndex("<")}

	n := p.parseText()
	if diff := cmp.Diff(NewText(""), n, treeOpts); diff != "" {
		t.Errorf("parseText() mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, Span{Offset: 0, Length: 0, Line: 1, Column: 1}, n.Span)
	require.Equal(t, 0, p.pos)
}

func TestParseTagNameMayBeEmpty(t *testing.T) {
	p := &parser{input: "=x", lines: newLineIndex("=x")}
	require.Equal(t, "", p.parseTagName())
	require.Equal(t, 0, p.pos)

	_, err := p.parseName("attribute name")
	require.ErrorIs(t, err, ErrUnexpectedChar)
}
