package dom

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// A Query is a compiled node predicate. The predicate is an expr-lang expression evaluated for
// every node with the variables:
//
//	tag        string             element tag name, "" for text
//	attrs      map[string]string  element attributes
//	text       string             text content, "" for elements
//	isText     bool
//	isElement  bool
//	depth      int                0 for the root
//	id         string             value of the id attribute
//	classes    []string           names in the class attribute
//
// For example: `tag == "a" && "external" in classes`.
//
// A Query is safe for concurrent use.
type Query struct {
	src  string
	prog *vm.Program
}

type queryEnv struct {
	Tag       string            `expr:"tag"`
	Attrs     map[string]string `expr:"attrs"`
	Text      string            `expr:"text"`
	IsText    bool              `expr:"isText"`
	IsElement bool              `expr:"isElement"`
	Depth     int               `expr:"depth"`
	ID        string            `expr:"id"`
	Classes   []string          `expr:"classes"`
}

// CompileQuery compiles predicate, which must evaluate to a bool.
func CompileQuery(predicate string) (*Query, error) {
	prog, err := expr.Compile(predicate, expr.Env(queryEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("dom: compile query: %w", err)
	}
	return &Query{src: predicate, prog: prog}, nil
}

func (q *Query) String() string {
	return q.src
}

// Match returns the nodes of the tree rooted at root for which the predicate holds, in pre-order.
func (q *Query) Match(root *Node) ([]*Node, error) {
	var out []*Node
	if err := q.match(root, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *Query) match(n *Node, depth int, out *[]*Node) error {
	res, err := vm.Run(q.prog, newQueryEnv(n, depth))
	if err != nil {
		return fmt.Errorf("dom: query %q: %w", q.src, err)
	}
	if ok, _ := res.(bool); ok {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		if err := q.match(c, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

func newQueryEnv(n *Node, depth int) queryEnv {
	env := queryEnv{
		Depth:   depth,
		Attrs:   map[string]string{},
		Classes: []string{},
	}
	switch t := n.Type.(type) {
	case Text:
		env.IsText = true
		env.Text = t.Data
	case *ElementData:
		env.IsElement = true
		env.Tag = t.TagName
		if t.Attributes != nil {
			env.Attrs = t.Attributes
		}
		env.ID, _ = t.ID()
		if classes := t.Classes(); classes != nil {
			env.Classes = classes
		}
	}
	return env
}

// Select compiles predicate and matches it against the tree rooted at root.
func Select(root *Node, predicate string) ([]*Node, error) {
	q, err := CompileQuery(predicate)
	if err != nil {
		return nil, err
	}
	return q.Match(root)
}
