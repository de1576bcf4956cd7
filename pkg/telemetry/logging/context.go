package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// CompileIDKey is the context key for the id of a top-level compile.
	CompileIDKey contextKey = "compile_id"

	// SourceKey is the context key for the root file being compiled.
	SourceKey contextKey = "source"
)

// WithCompileID adds a compile ID to the context.
func WithCompileID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CompileIDKey, id)
}

// GetCompileID retrieves the compile ID from the context.
func GetCompileID(ctx context.Context) string {
	if id, ok := ctx.Value(CompileIDKey).(string); ok {
		return id
	}
	return ""
}

// WithSource adds the root source path to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the root source path from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if id := GetCompileID(ctx); id != "" {
		fields = append(fields, string(CompileIDKey), id)
	}

	if source := GetSource(ctx); source != "" {
		fields = append(fields, string(SourceKey), source)
	}

	return fields
}
