package dom

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the tree rooted at n as YAML. Text nodes become strings; elements become
// mappings with the keys tag, attrs (omitted when empty) and children (omitted when empty).
func WriteYAML(w io.Writer, n *Node) error {
	yn, err := toYAML(n)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yn); err != nil {
		return err
	}
	return enc.Close()
}

func toYAML(n *Node) (*yaml.Node, error) {
	switch t := n.Type.(type) {
	case Text:
		return yamlString(t.Data), nil
	case *ElementData:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m.Content = append(m.Content, yamlString("tag"), yamlString(t.TagName))
		if len(t.Attributes) > 0 {
			attrs := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for _, k := range sortedKeys(t.Attributes) {
				attrs.Content = append(attrs.Content, yamlString(k), yamlString(t.Attributes[k]))
			}
			m.Content = append(m.Content, yamlString("attrs"), attrs)
		}
		if len(n.Children) > 0 {
			children := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, c := range n.Children {
				yc, err := toYAML(c)
				if err != nil {
					return nil, err
				}
				children.Content = append(children.Content, yc)
			}
			m.Content = append(m.Content, yamlString("children"), children)
		}
		return m, nil
	}
	return nil, fmt.Errorf("dom: unknown node type %T", n.Type)
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
