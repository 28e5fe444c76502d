package dom

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Dump writes an indented listing of the tree rooted at n, one node or attribute per line.
// Text and attribute values are Go-quoted, so newlines and quotes stay on their line:
//
//	| <a>
//	|   x="1"
//	|   "hello\nworld"
func Dump(w io.Writer, n *Node) error {
	return dumpLevel(w, n, 0)
}

func dumpIndent(b *strings.Builder, level int) {
	b.WriteString("| ")
	for i := 0; i < level; i++ {
		b.WriteString("  ")
	}
}

func dumpLevel(w io.Writer, n *Node, level int) error {
	var b strings.Builder
	dumpIndent(&b, level)
	level++
	switch t := n.Type.(type) {
	case *ElementData:
		fmt.Fprintf(&b, "<%s>", t.TagName)
		for _, k := range sortedKeys(t.Attributes) {
			b.WriteString("\n")
			dumpIndent(&b, level)
			b.WriteString(k + "=" + strconv.Quote(t.Attributes[k]))
		}
	case Text:
		b.WriteString(strconv.Quote(t.Data))
	default:
		return fmt.Errorf("dom: unknown node type %T", n.Type)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dumpLevel(w, c, level); err != nil {
			return err
		}
	}
	return nil
}

// sortedKeys returns the attribute names in lexical order.
func sortedKeys(attrs AttrMap) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
