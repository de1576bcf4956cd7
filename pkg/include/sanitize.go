package include

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Sanitize converts objectized arrays back into sequences, in place, and
// returns n. A mapping is an objectized array when its keys are exactly
// "0", "1", ... "k-1" in that order; any other mapping keeps its shape.
// The root, every mapping value and every sequence item are checked, so
// applying Sanitize twice gives the same tree as applying it once.
func Sanitize(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range n.Content {
			Sanitize(child)
		}

	case yaml.MappingNode:
		if isObjectizedArray(n) {
			values := make([]*yaml.Node, 0, len(n.Content)/2)
			for i := 1; i < len(n.Content); i += 2 {
				values = append(values, n.Content[i])
			}
			n.Kind = yaml.SequenceNode
			n.Tag = "!!seq"
			n.Content = values
			for _, child := range n.Content {
				Sanitize(child)
			}
			return n
		}
		for i := 1; i < len(n.Content); i += 2 {
			Sanitize(n.Content[i])
		}
	}

	return n
}

// sanitizeRoot sanitizes every mapping value and sequence item under root.
// The root itself keeps its shape unless objectized is set, meaning its
// entries came from a sequence-shaped include.
func sanitizeRoot(root *yaml.Node, objectized bool) *yaml.Node {
	if root == nil || objectized {
		return Sanitize(root)
	}

	switch root.Kind {
	case yaml.SequenceNode:
		for _, child := range root.Content {
			Sanitize(child)
		}
	case yaml.MappingNode:
		for i := 1; i < len(root.Content); i += 2 {
			Sanitize(root.Content[i])
		}
	}
	return root
}

// isObjectizedArray reports whether m is a non-empty mapping whose keys are
// the consecutive indices "0".."k-1" in order.
func isObjectizedArray(m *yaml.Node) bool {
	if m.Kind != yaml.MappingNode || len(m.Content) == 0 {
		return false
	}
	for i := 0; i < len(m.Content); i += 2 {
		key := m.Content[i]
		if key.Kind != yaml.ScalarNode || key.Value != strconv.Itoa(i/2) {
			return false
		}
	}
	return true
}
