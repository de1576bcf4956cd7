// Package include resolves $include directives in YAML documents.
//
// A directive is a mapping key whose value names another YAML file, or a
// list of files. The named files are resolved recursively, relative to the
// including file's directory, merged together and folded into the mapping
// that held the directive. Keys declared next to the directive win over
// included ones.
//
// # Directive Syntax
//
//	# app.yml
//	$include: base.yml
//	name: app
//	services:
//	  $include:
//	    - services/db.yml
//	    - services/cache.yml
//
// A key written as \$include is not a directive; it is emitted as a literal
// $include key.
//
// # Basic Usage
//
//	c := include.New(include.Options{Logger: logger})
//	out := c.Compile(ctx, "app.yml")
//	fmt.Print(out)
//
// Use CompileResult to obtain the diagnostics, the list of included files
// and timing alongside the output. Options.Recorder receives per-compile and
// per-include outcomes, and Options.Tracer, when set, gets a span for the
// compile and for every file it reads.
//
// # Merge Rules
//
// Includes listed under one mapping merge left to right: mappings merge key
// by key with the later file winning, sequences concatenate. A mapping whose
// keys are exactly "0", "1", ... in order is converted back into a sequence
// once merging is done (see Sanitize).
//
// # Failure Handling
//
// Compile never fails. A missing root file yields "", a root that cannot be
// parsed yields an "empty: true" document, and a missing, malformed or
// circular include contributes nothing. Every problem is logged and kept in
// Result.Diagnostics.
package include
