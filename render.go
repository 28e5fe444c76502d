package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes the tree rooted at n as HTML. Attributes are written in lexical order. Text is
// escaped, except inside raw text elements such as script and style.
//
// Render fails for trees that have no HTML serialization, e.g. a void element like <br> with
// children.
func Render(w io.Writer, n *Node) error {
	h, err := toHTML(n)
	if err != nil {
		return err
	}
	return html.Render(w, h)
}

// String returns the HTML of the tree rooted at n. Rendering errors are ignored.
func (n *Node) String() string {
	var buf strings.Builder
	_ = Render(&buf, n)
	return buf.String()
}

// toHTML converts the tree rooted at n into golang.org/x/net/html nodes.
func toHTML(n *Node) (*html.Node, error) {
	switch t := n.Type.(type) {
	case Text:
		return &html.Node{Type: html.TextNode, Data: t.Data}, nil
	case *ElementData:
		h := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(t.TagName)),
			Data:     t.TagName,
		}
		for _, k := range sortedKeys(t.Attributes) {
			h.Attr = append(h.Attr, html.Attribute{Key: k, Val: t.Attributes[k]})
		}
		for _, c := range n.Children {
			hc, err := toHTML(c)
			if err != nil {
				return nil, err
			}
			h.AppendChild(hc)
		}
		return h, nil
	}
	return nil, fmt.Errorf("dom: unknown node type %T", n.Type)
}
