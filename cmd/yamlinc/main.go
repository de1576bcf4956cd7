// Yamlinc compiles YAML documents that splice in other YAML files with the
// $include directive.
//
// Usage:
//
//	# Compile a file to stdout
//	yamlinc compile main.yml
//
//	# Compile to a file, without diagnostics
//	yamlinc compile main.yml --output compiled.yml --quiet
//
//	# Recompile whenever a source changes, then run a command
//	yamlinc watch main.yml --output compiled.yml --exec "make deploy"
//
//	# List recorded compiles
//	yamlinc history --limit 20
//
//	# Show version information
//	yamlinc version
package main

func main() {
	Execute()
}
