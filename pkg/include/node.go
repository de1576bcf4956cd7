package include

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

const strTag = "!!str"

// deref follows alias nodes to the node they name.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// copyNode returns a deep copy of n with aliases expanded and anchors dropped,
// so the copy shares nothing with the tree it came from.
func copyNode(n *yaml.Node) *yaml.Node {
	n = deref(n)
	if n == nil {
		return nil
	}

	out := *n
	out.Anchor = ""
	out.Alias = nil
	if n.Content != nil {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			out.Content[i] = copyNode(child)
		}
	}
	return &out
}

func isMapping(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

func isSequence(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

func isNull(n *yaml.Node) bool {
	n = deref(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// isNonEmptyCollection reports whether n is a mapping or sequence with at
// least one entry. Only such documents contribute to an include.
func isNonEmptyCollection(n *yaml.Node) bool {
	n = deref(n)
	return (isMapping(n) || isSequence(n)) && len(n.Content) > 0
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newKey(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value}
}

// objectize turns a sequence into a mapping keyed "0".."n-1". This is how
// sequence-shaped includes merge into mapping-shaped hosts; Sanitize undoes it.
func objectize(seq *yaml.Node) *yaml.Node {
	seq = deref(seq)
	out := newMapping()
	for i, item := range seq.Content {
		out.Content = append(out.Content, newKey(strconv.Itoa(i)), copyNode(item))
	}
	return out
}
