package include

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{
			name: "ordered indices become a sequence",
			src:  "list:\n  \"0\": a\n  \"1\": b\n  \"2\": c\n",
			want: map[string]any{"list": []any{"a", "b", "c"}},
		},
		{
			name: "unquoted indices",
			src:  "list:\n  0: a\n  1: b\n",
			want: map[string]any{"list": []any{"a", "b"}},
		},
		{
			name: "wrong order stays a mapping",
			src:  "m:\n  \"0\": a\n  \"2\": c\n  \"1\": b\n",
			want: map[string]any{"m": map[string]any{"0": "a", "2": "c", "1": "b"}},
		},
		{
			name: "gap stays a mapping",
			src:  "m:\n  \"0\": a\n  \"2\": c\n",
			want: map[string]any{"m": map[string]any{"0": "a", "2": "c"}},
		},
		{
			name: "not starting at zero stays a mapping",
			src:  "m:\n  \"1\": a\n  \"2\": b\n",
			want: map[string]any{"m": map[string]any{"1": "a", "2": "b"}},
		},
		{
			name: "root is converted",
			src:  "\"0\": a\n\"1\": b\n",
			want: []any{"a", "b"},
		},
		{
			name: "sequence items are converted",
			src:  "- \"0\": a\n  \"1\": b\n- c\n",
			want: []any{[]any{"a", "b"}, "c"},
		},
		{
			name: "nested conversion",
			src:  "outer:\n  \"0\":\n    \"0\": x\n  \"1\":\n    key: y\n",
			want: map[string]any{"outer": []any{[]any{"x"}, map[string]any{"key": "y"}}},
		},
		{
			name: "plain mapping untouched",
			src:  "a: 1\nb:\n  c: 2\n",
			want: map[string]any{"a": 1, "b": map[string]any{"c": 2}},
		},
		{
			name: "empty mapping untouched",
			src:  "m: {}\n",
			want: map[string]any{"m": map[string]any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(parse(t, tt.src))
			if diff := cmp.Diff(tt.want, value(t, got)); diff != "" {
				t.Errorf("Sanitize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSanitize_Exactness(t *testing.T) {
	ordered := Sanitize(parse(t, "\"0\": a\n\"1\": b\n\"2\": c\n"))
	if ordered.Kind != yaml.SequenceNode {
		t.Fatalf("Kind = %v, want SequenceNode", ordered.Kind)
	}
	if len(ordered.Content) != 3 {
		t.Errorf("len(Content) = %d, want 3", len(ordered.Content))
	}
	if ordered.Tag != "!!seq" {
		t.Errorf("Tag = %q, want %q", ordered.Tag, "!!seq")
	}

	shuffled := Sanitize(parse(t, "\"0\": a\n\"2\": c\n\"1\": b\n"))
	if shuffled.Kind != yaml.MappingNode {
		t.Errorf("Kind = %v, want MappingNode", shuffled.Kind)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"\"0\":\n  \"0\": x\n  \"1\": y\n",
		"list:\n  \"0\": a\n  \"1\": b\nm:\n  \"1\": a\n",
		"- \"0\": a\n- plain: true\n",
		"a: 1\n",
	}

	for _, src := range inputs {
		once := render(t, Sanitize(parse(t, src)))
		twice := render(t, Sanitize(Sanitize(parse(t, src))))
		if once != twice {
			t.Errorf("Sanitize() not idempotent for %q:\nonce:  %q\ntwice: %q", src, once, twice)
		}
	}
}

func TestSanitize_Nil(t *testing.T) {
	if got := Sanitize(nil); got != nil {
		t.Errorf("Sanitize(nil) = %v, want nil", got)
	}
}

func TestSanitizeRoot(t *testing.T) {
	src := "\"0\": zero\n\"1\": one\nnested:\n  \"0\": a\n"

	kept := sanitizeRoot(parse(t, src), false)
	want := map[string]any{"0": "zero", "1": "one", "nested": []any{"a"}}
	if diff := cmp.Diff(want, value(t, kept)); diff != "" {
		t.Errorf("sanitizeRoot(false) mismatch (-want +got):\n%s", diff)
	}

	converted := sanitizeRoot(parse(t, "\"0\": a\n\"1\": b\n"), true)
	if diff := cmp.Diff([]any{"a", "b"}, value(t, converted)); diff != "" {
		t.Errorf("sanitizeRoot(true) mismatch (-want +got):\n%s", diff)
	}
}
