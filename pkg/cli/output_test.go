package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{}
	data := "test message"

	output, err := formatter.Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	expected := "test message\n"
	if string(output) != expected {
		t.Errorf("Format() = %q, want %q", string(output), expected)
	}
}

func TestTextFormatterWriter(t *testing.T) {
	formatter := &TextFormatter{}
	data := "test message"
	buf := &bytes.Buffer{}

	err := formatter.FormatTo(buf, data)
	if err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	expected := "test message\n"
	if buf.String() != expected {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), expected)
	}
}

func TestJSONFormatter(t *testing.T) {
	tests := []struct {
		name   string
		data   interface{}
		indent bool
	}{
		{
			name:   "simple string",
			data:   "test",
			indent: false,
		},
		{
			name: "map with indent",
			data: map[string]string{
				"key": "value",
			},
			indent: true,
		},
		{
			name: "struct",
			data: struct {
				Name  string `json:"name"`
				Value int    `json:"value"`
			}{
				Name:  "test",
				Value: 42,
			},
			indent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &JSONFormatter{Indent: tt.indent}
			output, err := formatter.Format(tt.data)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Verify it's valid JSON by unmarshaling
			var result interface{}
			if err := json.Unmarshal(output, &result); err != nil {
				t.Errorf("Format() produced invalid JSON: %v", err)
			}
		})
	}
}

func TestJSONFormatterWriter(t *testing.T) {
	formatter := &JSONFormatter{Indent: true}
	data := map[string]string{"test": "value"}
	buf := &bytes.Buffer{}

	err := formatter.FormatTo(buf, data)
	if err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	// Verify valid JSON
	var result map[string]string
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Errorf("FormatTo() produced invalid JSON: %v", err)
	}

	if result["test"] != "value" {
		t.Errorf("FormatTo() = %v, want %v", result, data)
	}
}

type table struct{}

func (table) Headers() []string { return []string{"source", "status"} }
func (table) Rows() [][]string {
	return [][]string{
		{"main.yml", "ok"},
		{"conf/a long name.yml", "missing"},
	}
}

func TestTextFormatter_Tabular(t *testing.T) {
	output, err := (&TextFormatter{}).Format(table{})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	expected := "" +
		"source                status\n" +
		"main.yml              ok\n" +
		"conf/a long name.yml  missing\n"
	if string(output) != expected {
		t.Errorf("Format() =\n%s\nwant\n%s", output, expected)
	}
}

func TestCSVFormatter(t *testing.T) {
	output, err := (&CSVFormatter{}).Format(table{})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	expected := "source,status\nmain.yml,ok\nconf/a long name.yml,missing\n"
	if string(output) != expected {
		t.Errorf("Format() = %q, want %q", output, expected)
	}

	if _, err := (&CSVFormatter{}).Format("not a table"); err == nil {
		t.Error("Format() expected error for non-tabular data, got nil")
	}
}

func TestYAMLFormatter(t *testing.T) {
	data := []map[string]interface{}{
		{"source": "main.yml", "includes": 2},
	}

	output, err := (&YAMLFormatter{}).Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got []map[string]interface{}
	if err := yaml.Unmarshal(output, &got); err != nil {
		t.Fatalf("Format() produced invalid YAML: %v", err)
	}
	if diff := cmp.Diff(data, got); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
		want   string
	}{
		{"text formatter", FormatText, "*cli.TextFormatter"},
		{"json formatter", FormatJSON, "*cli.JSONFormatter"},
		{"yaml formatter", FormatYAML, "*cli.YAMLFormatter"},
		{"csv formatter", FormatCSV, "*cli.CSVFormatter"},
		{"default to text", "unknown", "*cli.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewFormatter(tt.format)
			got := fmt.Sprintf("%T", formatter)
			if got != tt.want {
				t.Errorf("NewFormatter(%q) type = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "JSON", "yaml", "csv"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", name, err)
		}
	}

	_, err := ParseFormat("xml")
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("ParseFormat(xml) error = %v, want *ConfigError", err)
	}
	if configErr.Field != "format" {
		t.Errorf("Field = %q, want format", configErr.Field)
	}
}
