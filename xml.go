package dom

import (
	"fmt"
	"io"
	"unicode"

	"github.com/beevik/etree"
)

// ToXML converts the tree rooted at n into an XML document. A text root becomes the document's
// only character data. Tag and attribute names must be valid XML names; names the parser accepts
// may not be, e.g. <1a></1a>.
func ToXML(n *Node) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := addXML(&doc.Element, n); err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteXML writes the tree rooted at n as XML, indenting nested elements by indent spaces.
// A negative indent writes the document on a single line.
func WriteXML(w io.Writer, n *Node, indent int) error {
	doc, err := ToXML(n)
	if err != nil {
		return err
	}
	if indent >= 0 {
		doc.Indent(indent)
	}
	_, err = doc.WriteTo(w)
	return err
}

func addXML(parent *etree.Element, n *Node) error {
	switch t := n.Type.(type) {
	case Text:
		parent.CreateText(t.Data)
	case *ElementData:
		if !isXMLName(t.TagName) {
			return fmt.Errorf("dom: %q is not a valid XML name", t.TagName)
		}
		el := parent.CreateElement(t.TagName)
		for _, k := range sortedKeys(t.Attributes) {
			if !isXMLName(k) {
				return fmt.Errorf("dom: %q is not a valid XML name", k)
			}
			el.CreateAttr(k, t.Attributes[k])
		}
		for _, c := range n.Children {
			if err := addXML(el, c); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("dom: unknown node type %T", n.Type)
	}
	return nil
}

// isXMLName reports whether s matches the XML Name production, approximated with Unicode letter
// and digit classes.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_' || r == ':':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.' || unicode.Is(unicode.Mn, r)):
		default:
			return false
		}
	}
	return true
}
