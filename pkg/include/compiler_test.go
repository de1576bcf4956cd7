package include

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	ierrors "mercator-hq/yamlinc/pkg/include/errors"
)

// writeFiles creates the given files under a fresh temp dir and returns it.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll() failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
	}
	return dir
}

// decodeOutput parses compiled output into plain Go values.
func decodeOutput(t *testing.T, out string) any {
	t.Helper()
	var v any
	if err := yaml.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("compiled output is not valid YAML: %v\n%s", err, out)
	}
	return v
}

func newTestCompiler(opts Options) *Compiler {
	if opts.IDs == nil {
		opts.IDs = &sequentialIDs{}
	}
	return New(opts)
}

func TestCompile_NoDirectivesIsIdentity(t *testing.T) {
	src := "name: app\nport: 8080\nenabled: true\nserver:\n  host: localhost\n"
	dir := writeFiles(t, map[string]string{"app.yml": src})
	path := filepath.Join(dir, "app.yml")

	out := newTestCompiler(Options{}).Compile(context.Background(), path)

	want := "## Source: " + path + "\n" + src
	if out != want {
		t.Errorf("Compile() = %q, want %q", out, want)
	}
}

func TestCompile_NoDirectivesIndexKeysKeepShape(t *testing.T) {
	src := "0: zero\n1: one\n"
	dir := writeFiles(t, map[string]string{"app.yml": src})
	path := filepath.Join(dir, "app.yml")

	out := newTestCompiler(Options{}).Compile(context.Background(), path)

	want := "## Source: " + path + "\n" + src
	if out != want {
		t.Errorf("Compile() = %q, want %q", out, want)
	}
}

func TestCompile_HostListComesFirst(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml": "list:\n  - host\n$include: b.yml\n",
		"b.yml": "list:\n  - inc\n",
	})

	out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "a.yml"))

	want := map[string]any{"list": []any{"host", "inc"}}
	if diff := cmp.Diff(want, decodeOutput(t, out)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_NoDirectivesSequences(t *testing.T) {
	src := "tags:\n  - a\n  - b\nnested:\n  - x: 1\n  - [1, 2]\n"
	dir := writeFiles(t, map[string]string{"app.yml": src})

	out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "app.yml"))

	var want any
	if err := yaml.Unmarshal([]byte(src), &want); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, decodeOutput(t, out)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_LocalKeysWin(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml": "foo: 1\n$include: b.yml\n",
		"b.yml": "foo: 2\nbar: 3\n",
	})
	path := filepath.Join(dir, "a.yml")

	res := newTestCompiler(Options{}).CompileResult(context.Background(), path)

	want := "## Source: " + path + "\nfoo: 1\nbar: 3\n"
	if res.Output != want {
		t.Errorf("Output = %q, want %q", res.Output, want)
	}
	if res.Status != StatusOK {
		t.Errorf("Status = %q, want %q", res.Status, StatusOK)
	}
	if res.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "b.yml")}, res.Includes); diff != "" {
		t.Errorf("Includes mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_MissingInclude(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml": "name: app\n$include: missing.yml\nport: 80\n",
	})
	path := filepath.Join(dir, "a.yml")

	res := newTestCompiler(Options{}).CompileResult(context.Background(), path)

	want := map[string]any{"name": "app", "port": 80}
	if diff := cmp.Diff(want, decodeOutput(t, res.Output)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(res.Output, Tag) {
		t.Errorf("output still contains a directive:\n%s", res.Output)
	}

	errs := res.Diagnostics.ByType(ierrors.ErrorTypeInclude)
	if len(errs) != 1 {
		t.Fatalf("len(include errors) = %d, want 1", len(errs))
	}
	if !strings.Contains(errs[0].Message, "missing.yml") {
		t.Errorf("Message = %q, want it to name missing.yml", errs[0].Message)
	}
	if errs[0].Location.Line != 2 {
		t.Errorf("Line = %d, want 2", errs[0].Location.Line)
	}
	if !strings.Contains(errs[0].Context, "-> 2 | $include: missing.yml") {
		t.Errorf("Context = %q, want the directive line marked", errs[0].Context)
	}
}

func TestCompile_MissingIncludeSuggestion(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml":    "$include: bse.yml\nname: app\n",
		"base.yml": "x: 1\n",
	})

	res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "a.yml"))

	errs := res.Diagnostics.ByType(ierrors.ErrorTypeInclude)
	if len(errs) != 1 {
		t.Fatalf("len(include errors) = %d, want 1", len(errs))
	}
	if !strings.Contains(errs[0].Suggestion, "base.yml") {
		t.Errorf("Suggestion = %q, want it to mention base.yml", errs[0].Suggestion)
	}
}

func TestCompile_NestedMissingIncludeRemovesDirective(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml": "server:\n  $include: gone.yml\n  port: 1\n",
	})

	out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "a.yml"))

	want := map[string]any{"server": map[string]any{"port": 1}}
	if diff := cmp.Diff(want, decodeOutput(t, out)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_IncludeListUnion(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"root.yml": "name: root\n$include: [x.yml, y.yml]\n",
		"x.yml":    "x: 1\n",
		"y.yml":    "y: 2\n",
	})

	res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "root.yml"))

	want := map[string]any{"name": "root", "x": 1, "y": 2}
	if diff := cmp.Diff(want, decodeOutput(t, res.Output)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
	if len(res.Includes) != 2 {
		t.Errorf("len(Includes) = %d, want 2", len(res.Includes))
	}
}

func TestCompile_RightmostIncludeWins(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"root.yml":   "$include:\n  - first.yml\n  - second.yml\n",
		"first.yml":  "k: first\nonly_first: true\nlist:\n  - 1\n",
		"second.yml": "k: second\nlist:\n  - 2\n",
	})

	out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "root.yml"))

	want := map[string]any{"k": "second", "only_first": true, "list": []any{1, 2}}
	if diff := cmp.Diff(want, decodeOutput(t, out)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_SiblingDirectives(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"root.yml": "$include: a.yml\nname: root\n$include: b.yml\n",
		"a.yml":    "a: 1\nshared: a\n",
		"b.yml":    "b: 2\nshared: b\n",
	})

	out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "root.yml"))

	want := map[string]any{"name": "root", "a": 1, "b": 2, "shared": "b"}
	if diff := cmp.Diff(want, decodeOutput(t, out)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_NestedHostDeepMerge(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"app.yml":  "server:\n  port: 80\ntags:\n  - local\n$include: base.yml\n",
		"base.yml": "server:\n  host: example.com\n  port: 1\ntags:\n  - base\n",
	})

	out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "app.yml"))

	want := map[string]any{
		"server": map[string]any{"port": 80, "host": "example.com"},
		"tags":   []any{"base", "local"},
	}
	if diff := cmp.Diff(want, decodeOutput(t, out)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_EscapedDirective(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"doc.yml": "\\$include: foo\nname: doc\n",
	})

	res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "doc.yml"))

	want := map[string]any{"$include": "foo", "name": "doc"}
	if diff := cmp.Diff(want, decodeOutput(t, res.Output)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(res.Output, EscapedTag) {
		t.Errorf("output still contains the escape:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "$include: foo\n") {
		t.Errorf("output missing literal key:\n%s", res.Output)
	}
	if res.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestCompile_SequenceIncludes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  any
	}{
		{
			name: "sequence include becomes root",
			files: map[string]string{
				"root.yml": "$include: list.yml\n",
				"list.yml": "- a\n- b\n",
			},
			want: []any{"a", "b"},
		},
		{
			name: "sequence include under key",
			files: map[string]string{
				"root.yml": "items:\n  $include: list.yml\n",
				"list.yml": "- a\n- b\n",
			},
			want: map[string]any{"items": []any{"a", "b"}},
		},
		{
			name: "sequence includes concatenate",
			files: map[string]string{
				"root.yml": "items:\n  $include:\n    - one.yml\n    - two.yml\n",
				"one.yml":  "- a\n- b\n",
				"two.yml":  "- c\n",
			},
			want: map[string]any{"items": []any{"a", "b", "c"}},
		},
		{
			name: "include inside sequence item",
			files: map[string]string{
				"root.yml": "- $include: item.yml\n- plain\n",
				"item.yml": "a: 1\n",
			},
			want: []any{map[string]any{"a": 1}, "plain"},
		},
		{
			name: "sequence then mapping",
			files: map[string]string{
				"root.yml": "$include:\n  - list.yml\n  - map.yml\n",
				"list.yml": "- a\n",
				"map.yml":  "key: value\n",
			},
			want: map[string]any{"0": "a", "key": "value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)
			out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "root.yml"))
			if diff := cmp.Diff(tt.want, decodeOutput(t, out)); diff != "" {
				t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompile_RelativeToIncluder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"root.yml":           "$include: conf/app.yml\n",
		"conf/app.yml":       "app: true\n$include: shared/db.yml\n",
		"conf/shared/db.yml": "db: postgres\n",
		"shared/db.yml":      "db: wrong\n",
	})

	res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "root.yml"))

	want := map[string]any{"app": true, "db": "postgres"}
	if diff := cmp.Diff(want, decodeOutput(t, res.Output)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
	if res.Depth != 2 {
		t.Errorf("Depth = %d, want 2", res.Depth)
	}
}

func TestCompile_AbsoluteIncludePath(t *testing.T) {
	shared := writeFiles(t, map[string]string{"shared.yml": "shared: true\n"})
	dir := writeFiles(t, map[string]string{
		"root.yml": "$include: " + filepath.Join(shared, "shared.yml") + "\n",
	})

	out := newTestCompiler(Options{}).Compile(context.Background(), filepath.Join(dir, "root.yml"))

	want := map[string]any{"shared": true}
	if diff := cmp.Diff(want, decodeOutput(t, out)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_CircularInclude(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  any
	}{
		{
			name: "self include",
			files: map[string]string{
				"a.yml": "$include: a.yml\nx: 1\n",
			},
			want: map[string]any{"x": 1},
		},
		{
			name: "two file cycle",
			files: map[string]string{
				"a.yml": "$include: b.yml\nname: a\n",
				"b.yml": "$include: a.yml\nb: 1\n",
			},
			want: map[string]any{"name": "a", "b": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)
			res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "a.yml"))

			if diff := cmp.Diff(tt.want, decodeOutput(t, res.Output)); diff != "" {
				t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
			}
			if !res.Diagnostics.HasErrorType(ierrors.ErrorTypeCycle) {
				t.Errorf("expected a cycle error, got: %v", res.Diagnostics)
			}
		})
	}
}

func TestCompile_RepeatedIncludeIsNotACycle(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"root.yml":   "a:\n  $include: common.yml\nb:\n  $include: common.yml\n",
		"common.yml": "shared: true\n",
	})

	res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "root.yml"))

	want := map[string]any{
		"a": map[string]any{"shared": true},
		"b": map[string]any{"shared": true},
	}
	if diff := cmp.Diff(want, decodeOutput(t, res.Output)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
	if res.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestCompile_MaxDepth(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml": "a: 1\n$include: b.yml\n",
		"b.yml": "b: 2\n$include: c.yml\n",
		"c.yml": "c: 3\n",
	})
	path := filepath.Join(dir, "a.yml")

	limited := newTestCompiler(Options{MaxDepth: 1}).CompileResult(context.Background(), path)
	want := map[string]any{"a": 1, "b": 2}
	if diff := cmp.Diff(want, decodeOutput(t, limited.Output)); diff != "" {
		t.Errorf("MaxDepth=1 mismatch (-want +got):\n%s", diff)
	}
	if !limited.Diagnostics.HasErrorType(ierrors.ErrorTypeCycle) {
		t.Errorf("expected a depth error, got: %v", limited.Diagnostics)
	}

	unlimited := newTestCompiler(Options{}).CompileResult(context.Background(), path)
	want = map[string]any{"a": 1, "b": 2, "c": 3}
	if diff := cmp.Diff(want, decodeOutput(t, unlimited.Output)); diff != "" {
		t.Errorf("unlimited mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_MalformedInclude(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml":    "name: a\n$include:\n  - bad.yml\n  - good.yml\n",
		"bad.yml":  "foo: [1, 2\n",
		"good.yml": "good: true\n",
	})

	res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "a.yml"))

	want := map[string]any{"name": "a", "good": true}
	if diff := cmp.Diff(want, decodeOutput(t, res.Output)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
	if got := len(res.Diagnostics.ByType(ierrors.ErrorTypeSyntax)); got != 1 {
		t.Errorf("len(syntax errors) = %d, want 1", got)
	}
}

func TestCompile_DirectiveValues(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		want       any
		wantErrors int
	}{
		{
			name: "null value is dropped",
			src:  "$include:\nname: a\n",
			want: map[string]any{"name": "a"},
		},
		{
			name: "empty string is dropped",
			src:  "$include: \"\"\nname: a\n",
			want: map[string]any{"name": "a"},
		},
		{
			name:       "mapping value is rejected",
			src:        "$include:\n  key: value\nname: a\n",
			want:       map[string]any{"name": "a"},
			wantErrors: 1,
		},
		{
			name:       "nested list entry is rejected",
			src:        "$include:\n  - [x.yml]\nname: a\n",
			want:       map[string]any{"name": "a"},
			wantErrors: 1,
		},
		{
			name:       "number value is rejected",
			src:        "$include: 5\nname: a\n",
			want:       map[string]any{"name": "a"},
			wantErrors: 1,
		},
		{
			name:       "boolean value is rejected",
			src:        "$include: true\nname: a\n",
			want:       map[string]any{"name": "a"},
			wantErrors: 1,
		},
		{
			name:       "number list entry is rejected",
			src:        "$include:\n  - 5\nname: a\n",
			want:       map[string]any{"name": "a"},
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"a.yml": tt.src})
			res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, "a.yml"))

			if diff := cmp.Diff(tt.want, decodeOutput(t, res.Output)); diff != "" {
				t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
			}
			if got := len(res.Diagnostics.ByType(ierrors.ErrorTypeDirective)); got != tt.wantErrors {
				t.Errorf("len(directive errors) = %d, want %d", got, tt.wantErrors)
			}
			if res.Diagnostics.HasErrorType(ierrors.ErrorTypeInclude) {
				t.Errorf("unexpected include error: %v", res.Diagnostics)
			}
		})
	}
}

func TestCompile_MissingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yml")

	res := newTestCompiler(Options{}).CompileResult(context.Background(), path)

	if res.Output != "" {
		t.Errorf("Output = %q, want empty", res.Output)
	}
	if res.Status != StatusMissing {
		t.Errorf("Status = %q, want %q", res.Status, StatusMissing)
	}
	if !res.Diagnostics.HasErrorType(ierrors.ErrorTypeIO) {
		t.Errorf("expected an io error, got: %v", res.Diagnostics)
	}
}

func TestCompile_EmptyAndMalformedRoot(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errType ierrors.ErrorType
	}{
		{name: "empty file", src: ""},
		{name: "comment only", src: "# nothing here\n"},
		{name: "null document", src: "~\n"},
		{name: "syntax error", src: "foo: [1, 2\n", errType: ierrors.ErrorTypeSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"a.yml": tt.src})
			path := filepath.Join(dir, "a.yml")

			res := newTestCompiler(Options{}).CompileResult(context.Background(), path)

			want := "## Source: " + path + "\nempty: true\n"
			if res.Output != want {
				t.Errorf("Output = %q, want %q", res.Output, want)
			}
			if res.Status != StatusEmpty {
				t.Errorf("Status = %q, want %q", res.Status, StatusEmpty)
			}
			if tt.errType != "" && !res.Diagnostics.HasErrorType(tt.errType) {
				t.Errorf("expected a %s error, got: %v", tt.errType, res.Diagnostics)
			}
		})
	}
}

func TestCompile_Indent(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.yml": "server:\n  port: 80\n"})
	path := filepath.Join(dir, "a.yml")

	out := newTestCompiler(Options{Indent: 4}).Compile(context.Background(), path)

	want := "## Source: " + path + "\nserver:\n    port: 80\n"
	if out != want {
		t.Errorf("Compile() = %q, want %q", out, want)
	}
}

func TestResolve(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml": "$include: b.yml\na: 1\n",
		"b.yml": "b: 2\n",
	})
	c := newTestCompiler(Options{})

	root, err := c.Resolve(context.Background(), filepath.Join(dir, "a.yml"))
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	want := map[string]any{"a": 1, "b": 2}
	if diff := cmp.Diff(want, value(t, root)); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	_, err = c.Resolve(context.Background(), filepath.Join(dir, "missing.yml"))
	var ie *ierrors.Error
	if !errors.As(err, &ie) || ie.Type != ierrors.ErrorTypeIO {
		t.Errorf("Resolve(missing) error = %v, want io error", err)
	}
}

// fakeRecorder captures Recorder calls.
type fakeRecorder struct {
	mu       sync.Mutex
	compiles []string
	includes []string
	depths   []int
}

func (r *fakeRecorder) RecordCompile(status string, _ time.Duration, depth int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compiles = append(r.compiles, status)
	r.depths = append(r.depths, depth)
}

func (r *fakeRecorder) RecordInclude(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.includes = append(r.includes, status)
}

func TestCompile_Recorder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yml": "$include:\n  - b.yml\n  - gone.yml\n  - a.yml\n",
		"b.yml": "b: 1\n",
	})
	rec := &fakeRecorder{}
	c := newTestCompiler(Options{Recorder: rec})

	c.Compile(context.Background(), filepath.Join(dir, "a.yml"))
	c.Compile(context.Background(), filepath.Join(dir, "nope.yml"))

	if diff := cmp.Diff([]string{StatusOK, StatusMissing}, rec.compiles); diff != "" {
		t.Errorf("compiles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 0}, rec.depths); diff != "" {
		t.Errorf("depths mismatch (-want +got):\n%s", diff)
	}
	wantIncludes := []string{IncludeResolved, IncludeMissing, IncludeCycle}
	if diff := cmp.Diff(wantIncludes, rec.includes); diff != "" {
		t.Errorf("includes mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_DeepNesting(t *testing.T) {
	const depth = 200
	files := make(map[string]string, depth+1)
	for i := 0; i < depth; i++ {
		files[nestedName(i)] = "$include: " + nestedName(i+1) + "\n"
	}
	files[nestedName(depth)] = "leaf: true\n"
	dir := writeFiles(t, files)

	res := newTestCompiler(Options{}).CompileResult(context.Background(), filepath.Join(dir, nestedName(0)))

	want := map[string]any{"leaf": true}
	if diff := cmp.Diff(want, decodeOutput(t, res.Output)); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
	if res.Depth != depth {
		t.Errorf("Depth = %d, want %d", res.Depth, depth)
	}
}

func nestedName(i int) string {
	return fmt.Sprintf("level%03d.yml", i)
}
