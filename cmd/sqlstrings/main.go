// Package main provides the sqlstrings CLI for rendering SQL templates from
// the shell.
//
// The CLI supports:
//   - render: Render a template file (or stdin) with arguments
//   - escape: Escape a single value or identifier for a dialect
//   - config show: Print the effective configuration
//   - version: Print version information
//
// Usage:
//
//	sqlstrings [flags] <command>
//
// Templates use Sqlf syntax: every %v is replaced by the next --arg value.
//
//	echo 'SELECT * FROM %v WHERE id = %v' | sqlstrings render -a ident:users -a 42 --dialect postgres
package main

func main() {
	Execute()
}
