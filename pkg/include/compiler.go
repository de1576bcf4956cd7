package include

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"gopkg.in/yaml.v3"

	ierrors "mercator-hq/yamlinc/pkg/include/errors"
	"mercator-hq/yamlinc/pkg/telemetry/logging"
	"mercator-hq/yamlinc/pkg/telemetry/tracing"
)

// Compile statuses reported in Result and to the Recorder.
const (
	StatusOK      = "ok"      // Document compiled
	StatusEmpty   = "empty"   // Document empty or failed to resolve; "empty: true" emitted
	StatusMissing = "missing" // Root file does not exist; nothing emitted
)

// Include statuses reported to the Recorder.
const (
	IncludeResolved = "resolved"
	IncludeMissing  = "missing"
	IncludeFailed   = "failed"
	IncludeCycle    = "cycle"
)

// emptyDocument stands in for documents that produced nothing.
const emptyDocument = "empty: true\n"

// Recorder receives compile and include outcomes, typically a metrics collector.
type Recorder interface {
	RecordCompile(status string, duration time.Duration, depth int)
	RecordInclude(status string)
}

// Options configures a Compiler.
type Options struct {
	// Logger receives Analyze/Include/Problem diagnostics. Nil discards them.
	Logger *logging.Logger

	// IDs generates directive key suffixes. Nil uses UUIDGenerator.
	IDs IDGenerator

	// Recorder receives outcomes. Nil disables recording.
	Recorder Recorder

	// Tracer starts a span per compile and per file read. Nil disables
	// tracing.
	Tracer trace.Tracer

	// Indent is the YAML output indentation (default: 2).
	Indent int

	// MaxDepth limits include nesting; 0 means unlimited. Circular includes
	// are always rejected.
	MaxDepth int
}

// Compiler resolves $include directives and renders the result as YAML.
// A Compiler holds no per-compile state and may be reused.
type Compiler struct {
	logger   *logging.Logger
	ids      IDGenerator
	recorder Recorder
	tracer   trace.Tracer
	indent   int
	maxDepth int
}

// Result describes a single top-level compile.
type Result struct {
	// ID uniquely identifies this compile.
	ID string

	// Source is the root file path as given.
	Source string

	// Output is the compiled YAML text, "" when the root file is missing.
	Output string

	// Status is one of StatusOK, StatusEmpty, StatusMissing.
	Status string

	// Includes lists every file successfully included, in resolution order.
	Includes []string

	// Diagnostics holds every problem reported during the compile.
	Diagnostics *ierrors.ErrorList

	// Depth is the deepest include nesting reached (root = 0).
	Depth int

	// Duration is the wall time of the compile.
	Duration time.Duration
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	c := &Compiler{
		logger:   opts.Logger,
		ids:      opts.IDs,
		recorder: opts.Recorder,
		tracer:   opts.Tracer,
		indent:   opts.Indent,
		maxDepth: opts.MaxDepth,
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	if c.ids == nil {
		c.ids = UUIDGenerator{}
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("")
	}
	if c.indent <= 0 {
		c.indent = 2
	}
	return c
}

// Compile compiles the YAML file at path and returns the output text. It
// never fails: a missing root yields "", a document that cannot be parsed
// or resolved yields an "empty: true" stand-in. Problems are logged.
func (c *Compiler) Compile(ctx context.Context, path string) string {
	return c.CompileResult(ctx, path).Output
}

// CompileResult is Compile with the full outcome.
func (c *Compiler) CompileResult(ctx context.Context, path string) (res Result) {
	start := time.Now()
	res = Result{
		ID:          uuid.NewString(),
		Source:      path,
		Diagnostics: ierrors.NewErrorList(),
	}
	ctx = logging.WithSource(logging.WithCompileID(ctx, res.ID), path)
	ctx, span := c.tracer.Start(ctx, tracing.SpanCompile, tracing.CompileStart(res.ID, path))

	defer func() {
		res.Duration = time.Since(start)
		if c.recorder != nil {
			c.recorder.RecordCompile(res.Status, res.Duration, res.Depth)
		}
		tracing.SetCompileAttributes(span, res.Status, res.Depth, len(res.Includes), res.Diagnostics.Count())
		if res.Status == StatusOK {
			tracing.SetStatus(span, nil)
		} else {
			tracing.SetStatus(span, fmt.Errorf("compile of %s was %s", path, res.Status))
		}
		span.End()
	}()

	if !fileExists(path) {
		err := &ierrors.Error{
			Type:     ierrors.ErrorTypeIO,
			Message:  fmt.Sprintf("file '%s' not found.", path),
			Location: ierrors.Location{File: path},
		}
		res.Diagnostics.Add(err)
		c.logger.ErrorContext(ctx, "Problem", "error", err.Message)
		res.Status = StatusMissing
		return res
	}

	c.logger.InfoContext(ctx, "Analyze", "file", path)

	s := &session{compiler: c, result: &res}
	root, err := s.resolve(ctx, path, 0)
	if err != nil {
		s.report(ctx, err)
	}

	body, status := c.render(ctx, root, &res)
	res.Status = status
	res.Output = fmt.Sprintf("## Source: %s\n%s", path, body)
	if status == StatusOK {
		c.logger.DoneContext(ctx, "Compiled", "file", path)
	}
	return res
}

// Resolve loads path and returns its resolved tree without serializing it.
// Problems inside included files are logged and omitted; only a failure of
// path itself is returned. Empty documents yield a nil node.
func (c *Compiler) Resolve(ctx context.Context, path string) (*yaml.Node, error) {
	res := Result{Source: path, Diagnostics: ierrors.NewErrorList()}
	s := &session{compiler: c, result: &res}
	return s.resolve(ctx, path, 0)
}

// render serializes the resolved root, falling back to the empty stand-in.
func (c *Compiler) render(ctx context.Context, root *yaml.Node, res *Result) (string, string) {
	if root == nil || isNull(root) {
		return emptyDocument, StatusEmpty
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(root); err != nil {
		e := &ierrors.Error{
			Type:     ierrors.ErrorTypeSyntax,
			Message:  fmt.Sprintf("Error on file '%s' %v", res.Source, err),
			Location: ierrors.Location{File: res.Source},
			Err:      err,
		}
		res.Diagnostics.Add(e)
		c.logger.ErrorContext(ctx, "Problem", "error", e.Message)
		return emptyDocument, StatusEmpty
	}
	if err := enc.Close(); err != nil {
		c.logger.ErrorContext(ctx, "Problem", "error", err.Error())
		return emptyDocument, StatusEmpty
	}
	return buf.String(), StatusOK
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
