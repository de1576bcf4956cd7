// Package errors provides rich error types for include resolution.
//
// Compile problems never abort a compile: they are collected in an
// ErrorList, logged, and the affected contribution is dropped.
//
// # Error Types
//
// ErrorTypeIO: the root file does not exist
//
// ErrorTypeInclude: an included file does not exist relative to its includer
//
// ErrorTypeSyntax: a file could not be parsed as YAML
//
// ErrorTypeCycle: a file includes itself, directly or transitively, or the
// nesting limit was exceeded
//
// ErrorTypeDirective: an include value is neither a path nor a list of paths
//
// # Basic Usage
//
//	err := &errors.Error{
//	    Type:     errors.ErrorTypeInclude,
//	    Message:  "file not found 'base.yml' on 'app.yml' at line 3.",
//	    Location: errors.Location{File: "app.yml", Line: 3},
//	}
//	err = errors.WithContext(err, source, 2)
//	fmt.Println(err.Error())
package errors
