package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanCompile   = "yamlinc.compile"
	SpanResolve   = "yamlinc.resolve"
	SpanRecompile = "yamlinc.recompile"
)

// Attribute keys set on yamlinc spans.
const (
	AttrCompileID = "yamlinc.compile_id"
	AttrSource    = "yamlinc.source"
	AttrFile      = "yamlinc.file"
	AttrStatus    = "yamlinc.status"
	AttrDepth     = "yamlinc.depth"
	AttrIncludes  = "yamlinc.includes"
	AttrErrors    = "yamlinc.errors"
	AttrTrigger   = "yamlinc.trigger"
	AttrErrorType = "yamlinc.error.type"
)

// CompileStart returns the start options for a compile span.
func CompileStart(compileID, source string) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String(AttrCompileID, compileID),
		attribute.String(AttrSource, source),
	)
}

// ResolveStart returns the start options for the span of one file read.
func ResolveStart(file string, depth int) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String(AttrFile, file),
		attribute.Int(AttrDepth, depth),
	)
}

// RecompileStart returns the start options for a watch-mode recompile span.
func RecompileStart(trigger string) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String(AttrTrigger, trigger))
}

// SetCompileAttributes records the outcome of a compile on its span.
//
// Example:
//
//	SetCompileAttributes(span, "ok", 2, 3, 0)
func SetCompileAttributes(span trace.Span, status string, depth, includes, errors int) {
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrDepth, depth),
		attribute.Int(AttrIncludes, includes),
		attribute.Int(AttrErrors, errors),
	)
}

// SetErrorAttributes records err on the span, tagged with errorType, and
// marks the span failed.
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}
	if errorType != "" {
		span.SetAttributes(attribute.String(AttrErrorType, errorType))
	}
	SetError(span, err)
}
