package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid JSON config",
			config:  Config{Level: "info", Format: "json"},
			wantErr: false,
		},
		{
			name:    "valid text config",
			config:  Config{Level: "debug", Format: "text"},
			wantErr: false,
		},
		{
			name:    "valid console config",
			config:  Config{Level: "warn", Format: "console"},
			wantErr: false,
		},
		{
			name:    "defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "invalid", Format: "json"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "invalid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{
			name:      "debug level logs debug",
			logLevel:  "debug",
			logMethod: func(l *Logger, msg string) { l.Debug(msg) },
			wantLog:   true,
		},
		{
			name:      "info level filters debug",
			logLevel:  "info",
			logMethod: func(l *Logger, msg string) { l.Debug(msg) },
			wantLog:   false,
		},
		{
			name:      "info level logs done",
			logLevel:  "info",
			logMethod: func(l *Logger, msg string) { l.Done(msg) },
			wantLog:   true,
		},
		{
			name:      "warn level filters info",
			logLevel:  "warn",
			logMethod: func(l *Logger, msg string) { l.Info(msg) },
			wantLog:   false,
		},
		{
			name:      "warn level filters done",
			logLevel:  "warn",
			logMethod: func(l *Logger, msg string) { l.Done(msg) },
			wantLog:   false,
		},
		{
			name:      "error level filters warn",
			logLevel:  "error",
			logMethod: func(l *Logger, msg string) { l.Warn(msg) },
			wantLog:   false,
		},
		{
			name:      "error level logs error",
			logLevel:  "error",
			logMethod: func(l *Logger, msg string) { l.Error(msg) },
			wantLog:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.logLevel, Format: "json", Writer: buf})
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			testMsg := "test message"
			tt.logMethod(logger, testMsg)

			hasLog := strings.Contains(buf.String(), testMsg)
			if hasLog != tt.wantLog {
				t.Errorf("Log filtering failed: got log=%v, want log=%v, output=%s",
					hasLog, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_Quiet(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Format: "console", Quiet: true, Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Error("Problem", "error", "boom")
	logger.Info("Analyze", "file", "a.yml")
	logger.Done("Compiled", "file", "a.yml")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestLogger_ConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "console", NoColor: true, Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithCompileID(context.Background(), "abc")
	logger.ErrorContext(ctx, "Problem", "error", "file 'a.yml' not found.")
	logger.InfoContext(ctx, "Analyze", "file", "a.yml")
	logger.DoneContext(ctx, "Compiled", "file", "a.yml")
	logger.Info("Watching")

	want := " > Problem : file 'a.yml' not found.\n" +
		"   Analyze : a.yml\n" +
		"   Compiled : a.yml\n" +
		"   Watching\n"
	if got := buf.String(); got != want {
		t.Errorf("console output =\n%q\nwant\n%q", got, want)
	}
}

func TestLogger_DoneLevelName(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Done("Compiled", "file", "a.yml")

	if !strings.Contains(buf.String(), `"level":"DONE"`) {
		t.Errorf("expected DONE level in output: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	childLogger := logger.With("component", "watch", "path", "app.yml")
	childLogger.Info("test message")

	for _, field := range []string{"component", "watch", "path", "app.yml", "test message"} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("Expected field %q not found in output: %s", field, buf.String())
		}
	}
}

func TestLogger_WithContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	ctx := WithCompileID(context.Background(), "cmp-456")
	ctx = WithSource(ctx, "root.yml")

	logger.WithContext(ctx).Info("test message")

	for _, field := range []string{"compile_id", "cmp-456", "source", "root.yml"} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("Expected field %q not found in output: %s", field, buf.String())
		}
	}

	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext() with empty context should return the same logger")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("Problem", "error", "ignored")
	if logger.Slog() == nil {
		t.Fatal("Slog() returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"", false},
		{"warning", false},
		{"error", false},
		{"trace", true},
	}

	for _, tt := range tests {
		if _, err := parseLevel(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  LogFormat
	}{
		{"", FormatConsole},
		{"console", FormatConsole},
		{"JSON", FormatJSON},
		{"text", FormatText},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.input)
		if err != nil {
			t.Errorf("parseFormat(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("parseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
