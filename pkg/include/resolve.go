package include

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ierrors "mercator-hq/yamlinc/pkg/include/errors"
	"mercator-hq/yamlinc/pkg/telemetry/tracing"
)

// session carries the state of one top-level compile: the chain of files
// currently being resolved (for cycle detection) and the result being built.
type session struct {
	compiler *Compiler
	result   *Result
	stack    []string
}

// resolve loads, escapes, parses and resolves one file inside its own span.
// It returns a nil node for empty documents.
func (s *session) resolve(ctx context.Context, path string, depth int) (*yaml.Node, error) {
	ctx, span := s.compiler.tracer.Start(ctx, tracing.SpanResolve, tracing.ResolveStart(path, depth))
	defer span.End()

	n, err := s.resolveFile(ctx, path, depth)
	if err != nil {
		var ie *ierrors.Error
		errType := ""
		if errors.As(err, &ie) {
			errType = string(ie.Type)
		}
		tracing.SetErrorAttributes(span, err, errType)
	}
	return n, err
}

func (s *session) resolveFile(ctx context.Context, path string, depth int) (*yaml.Node, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = filepath.Clean(path)
	}

	if idx := s.indexInStack(absPath); idx >= 0 {
		chain := append(append([]string(nil), s.stack[idx:]...), absPath)
		return nil, &ierrors.Error{
			Type:       ierrors.ErrorTypeCycle,
			Message:    fmt.Sprintf("circular include of '%s': %s", path, strings.Join(chain, " -> ")),
			Location:   ierrors.Location{File: path},
			Suggestion: "Remove the circular include",
		}
	}
	if max := s.compiler.maxDepth; max > 0 && depth > max {
		return nil, &ierrors.Error{
			Type:     ierrors.ErrorTypeCycle,
			Message:  fmt.Sprintf("include of '%s' exceeds the maximum nesting depth of %d", path, max),
			Location: ierrors.Location{File: path},
		}
	}

	s.stack = append(s.stack, absPath)
	defer func() { s.stack = s.stack[:len(s.stack)-1] }()
	if depth > s.result.Depth {
		s.result.Depth = depth
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ierrors.Error{
			Type:     ierrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Error on file '%s' %v", path, err),
			Location: ierrors.Location{File: path},
			Err:      err,
		}
	}
	source := string(raw)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(EscapeDirectives(source, s.compiler.ids)), &doc); err != nil {
		return nil, &ierrors.Error{
			Type:     ierrors.ErrorTypeSyntax,
			Message:  fmt.Sprintf("Error on file '%s' %v", path, err),
			Location: ierrors.Location{File: path},
			Err:      err,
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	f := &fileFrame{path: path, dir: filepath.Dir(path), source: source, depth: depth}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return sanitizeRoot(s.resolveTree(ctx, root, f), false), nil
	}
	return sanitizeRoot(root, s.resolveMapping(ctx, root, f)), nil
}

// fileFrame describes the file whose tree is being walked.
type fileFrame struct {
	path   string
	dir    string
	source string
	depth  int
}

// resolveTree walks n depth-first, executing every directive found in its
// mappings. Scalars are returned unchanged.
func (s *session) resolveTree(ctx context.Context, n *yaml.Node, f *fileFrame) *yaml.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.SequenceNode:
		for i, child := range n.Content {
			n.Content[i] = s.resolveTree(ctx, child, f)
		}
	case yaml.MappingNode:
		s.resolveMapping(ctx, n, f)
	}
	return n
}

// resolveMapping removes every directive key from m, merges the files they
// name into an accumulator and finally folds the accumulator beneath m's own
// keys. Escaped keys are restored to their literal spelling. It reports
// whether a sequence accumulator was objectized into m.
func (s *session) resolveMapping(ctx context.Context, m *yaml.Node, f *fileFrame) bool {
	var acc *yaml.Node
	content := make([]*yaml.Node, 0, len(m.Content))

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]

		if key.Kind == yaml.ScalarNode && IsDirectiveKey(key.Value) {
			for _, target := range s.directiveTargets(ctx, value, f) {
				acc = s.include(ctx, acc, target, f)
			}
			continue
		}

		restoreEscapedKey(key)
		content = append(content, key, s.resolveTree(ctx, value, f))
	}
	m.Content = content

	if !isNonEmptyCollection(acc) {
		return false
	}
	objectized := isSequence(acc)
	if objectized {
		acc = objectize(acc)
	}
	m.Content = mergeBeneath(m, acc).Content
	return objectized
}

// restoreEscapedKey rewrites a literal "\$include" key to "$include". It is
// ordinary data from here on.
func restoreEscapedKey(key *yaml.Node) {
	if key.Kind == yaml.ScalarNode && key.Value == EscapedTag {
		key.Value = Tag
	}
}

// directiveTargets returns the paths named by a directive value: a single
// path or a sequence of paths. A null value names nothing; numbers, booleans
// and other non-string scalars are rejected.
func (s *session) directiveTargets(ctx context.Context, value *yaml.Node, f *fileFrame) []string {
	value = deref(value)
	if isNull(value) {
		return nil
	}

	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() != strTag {
			s.report(ctx, s.directiveError(value, f))
			return nil
		}
		if value.Value == "" {
			return nil
		}
		return []string{value.Value}

	case yaml.SequenceNode:
		targets := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			item = deref(item)
			if item.Kind == yaml.ScalarNode && item.ShortTag() == strTag && item.Value != "" {
				targets = append(targets, item.Value)
				continue
			}
			s.report(ctx, s.directiveError(item, f))
		}
		return targets

	default:
		s.report(ctx, s.directiveError(value, f))
		return nil
	}
}

func (s *session) directiveError(n *yaml.Node, f *fileFrame) *ierrors.Error {
	return &ierrors.Error{
		Type:     ierrors.ErrorTypeDirective,
		Message:  fmt.Sprintf("include value on '%s' at line %d is not a file path.", f.path, n.Line),
		Location: ierrors.Location{File: f.path, Line: n.Line},
	}
}

// include resolves one target relative to the including file and merges it
// into acc. Failures are reported and leave acc unchanged.
func (s *session) include(ctx context.Context, acc *yaml.Node, target string, f *fileFrame) *yaml.Node {
	full := target
	if !filepath.IsAbs(full) {
		full = filepath.Join(f.dir, target)
	}

	if !fileExists(full) {
		line := ierrors.LineOf(f.source, target)
		err := &ierrors.Error{
			Type:       ierrors.ErrorTypeInclude,
			Message:    fmt.Sprintf("file not found '%s' on '%s' at line %d.", target, f.path, line),
			Location:   ierrors.Location{File: f.path, Line: line},
			Suggestion: ierrors.SuggestFile(full),
		}
		s.report(ctx, ierrors.WithContext(err, f.source, 2))
		s.record(IncludeMissing)
		return acc
	}

	s.compiler.logger.InfoContext(ctx, "Include", "file", target)

	included, err := s.resolve(ctx, full, f.depth+1)
	if err != nil {
		s.report(ctx, err)
		var ie *ierrors.Error
		if errors.As(err, &ie) && ie.Type == ierrors.ErrorTypeCycle {
			s.record(IncludeCycle)
		} else {
			s.record(IncludeFailed)
		}
		return acc
	}

	s.result.Includes = append(s.result.Includes, full)
	s.record(IncludeResolved)

	if !isNonEmptyCollection(included) {
		return acc
	}
	return accumulate(acc, included)
}

// accumulate merges an included document into the accumulator. The first
// contribution fixes the shape; sequences concatenate with sequences, and a
// sequence meeting a mapping is objectized first.
func accumulate(acc, included *yaml.Node) *yaml.Node {
	switch {
	case acc == nil:
		return included
	case isMapping(acc) == isMapping(included):
		return DeepMerge(acc, included)
	case isSequence(acc):
		return DeepMerge(objectize(acc), included)
	default:
		return DeepMerge(acc, objectize(included))
	}
}

// report records err in the result diagnostics and logs it.
func (s *session) report(ctx context.Context, err error) {
	var ie *ierrors.Error
	if !errors.As(err, &ie) {
		ie = &ierrors.Error{Type: ierrors.ErrorTypeIO, Message: err.Error(), Err: err}
	}
	s.result.Diagnostics.Add(ie)
	s.compiler.logger.ErrorContext(ctx, "Problem", "error", ie.Message)
}

func (s *session) record(status string) {
	if s.compiler.recorder != nil {
		s.compiler.recorder.RecordInclude(status)
	}
}

func (s *session) indexInStack(absPath string) int {
	for i, p := range s.stack {
		if p == absPath {
			return i
		}
	}
	return -1
}
