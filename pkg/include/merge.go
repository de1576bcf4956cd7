package include

import (
	"gopkg.in/yaml.v3"
)

// DeepMerge merges src over dst and returns a new tree; neither input is
// modified.
//
//   - mappings merge key by key, src winning on conflicts; dst keys keep
//     their order and keys only present in src are appended
//   - sequences concatenate, dst items first
//   - any other combination takes src
func DeepMerge(dst, src *yaml.Node) *yaml.Node {
	return merge(dst, src, false)
}

// mergeBeneath merges base underneath top: top wins scalar and mapping
// conflicts and keeps its key order, base-only keys are appended. Sequences
// still concatenate top items first.
func mergeBeneath(top, base *yaml.Node) *yaml.Node {
	return merge(top, base, true)
}

// merge combines a and b. Key order and sequence order follow a then b;
// firstWins only selects which side takes precedence on a conflict.
func merge(a, b *yaml.Node, firstWins bool) *yaml.Node {
	a, b = deref(a), deref(b)

	switch {
	case a == nil:
		return copyNode(b)

	case b == nil:
		return copyNode(a)

	case a.Kind == yaml.MappingNode && b.Kind == yaml.MappingNode:
		return mergeMappings(a, b, firstWins)

	case a.Kind == yaml.SequenceNode && b.Kind == yaml.SequenceNode:
		out := copyNode(a)
		out.Content = make([]*yaml.Node, 0, len(a.Content)+len(b.Content))
		for _, item := range a.Content {
			out.Content = append(out.Content, copyNode(item))
		}
		for _, item := range b.Content {
			out.Content = append(out.Content, copyNode(item))
		}
		return out

	default:
		if firstWins {
			return copyNode(a)
		}
		return copyNode(b)
	}
}

func mergeMappings(a, b *yaml.Node, firstWins bool) *yaml.Node {
	out := copyNode(a)
	out.Content = make([]*yaml.Node, 0, len(a.Content)+len(b.Content))

	index := make(map[string]int, len(a.Content)/2)
	for i := 0; i+1 < len(a.Content); i += 2 {
		key := a.Content[i]
		if _, seen := index[key.Value]; !seen {
			index[key.Value] = len(out.Content) + 1
		}
		out.Content = append(out.Content, copyNode(key), copyNode(a.Content[i+1]))
	}

	for i := 0; i+1 < len(b.Content); i += 2 {
		key, value := b.Content[i], b.Content[i+1]
		pos, ok := index[key.Value]
		if !ok {
			index[key.Value] = len(out.Content) + 1
			out.Content = append(out.Content, copyNode(key), copyNode(value))
			continue
		}
		out.Content[pos] = merge(out.Content[pos], value, firstWins)
	}

	return out
}
