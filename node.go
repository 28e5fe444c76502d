package dom

import (
	"strings"
)

// AttrMap maps attribute names to values. Keys are unique; order is not preserved.
type AttrMap map[string]string

// NodeType is the payload of a Node: either Text or *ElementData.
type NodeType interface {
	nodeType()
}

// Text is the payload of a text node.
type Text struct {
	Data string
}

// ElementData is the payload of an element node. Children live in the Node.
type ElementData struct {
	TagName    string
	Attributes AttrMap
}

func (Text) nodeType()         {}
func (*ElementData) nodeType() {}

// Node is an element or text node of a parsed tree.
type Node struct {
	// Type is either Text or *ElementData.
	Type NodeType

	// Children are in document order. Text nodes have none.
	Children []*Node

	// Span is the source location of the node. It is zero for nodes built with
	// NewText or NewElement.
	Span Span
}

// NewText returns a text node holding content.
func NewText(content string) *Node {
	return &Node{Type: Text{Data: content}}
}

// NewElement returns an element node. The node takes ownership of children; neither the tag name
// nor the attributes are validated.
func NewElement(tagName string, attrs AttrMap, children []*Node) *Node {
	return &Node{
		Type: &ElementData{
			TagName:    tagName,
			Attributes: attrs,
		},
		Children: children,
	}
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	_, ok := n.Type.(Text)
	return ok
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	_, ok := n.Type.(*ElementData)
	return ok
}

// Element returns the element payload of n, or false for text nodes.
func (n *Node) Element() (*ElementData, bool) {
	e, ok := n.Type.(*ElementData)
	return e, ok
}

// TextData returns the content of a text node, or false for elements.
func (n *Node) TextData() (string, bool) {
	t, ok := n.Type.(Text)
	return t.Data, ok
}

// Walk visits n and its descendants in pre-order. Returning false from fn skips the children of
// the visited node.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// ID returns the value of the id attribute.
func (e *ElementData) ID() (string, bool) {
	id, ok := e.Attributes["id"]
	return id, ok
}

// Classes returns the whitespace separated names of the class attribute.
func (e *ElementData) Classes() []string {
	class, ok := e.Attributes["class"]
	if !ok {
		return nil
	}
	return strings.Fields(class)
}
