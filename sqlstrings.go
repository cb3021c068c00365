// Package sqlstrings composes SQL statements from small, immutable fragments
// and renders them either as parameterized SQL with ordered bindings or as a
// single statement with every value inlined as an escaped literal.
//
// # Module Structure
//
//   - github.com/pthm/sqlstrings (core): fragments, templates, the evaluator.
//   - github.com/pthm/sqlstrings/pkg/dialect: escapers and placeholder styles
//     for PostgreSQL, MySQL and SQLite.
//   - github.com/pthm/sqlstrings/cmd/sqlstrings: a CLI for rendering templates
//     from the shell.
//
// # Core Concepts
//
// A Fragment is a unit of SQL. Fragments are built by combinators and
// nested freely; nothing is escaped until the tree is rendered.
//
//	Raw("now()")                  // verbatim text
//	Ident("users.name")           // "users"."name"
//	Param(42)                     // ? with binding 42
//	Parameterize([]int{1, 2, 3})  // ?, ?, ?
//	Columnize([]string{"id"})     // "id"
//	Lines(fragments)              // one fragment per line
//	Clause(parts, cond)           // dropped when cond renders empty
//	Fn(parts, "tbl")              // count("tbl")
//
// Templates interleave literal text with values. Values that are not
// fragments become parameters:
//
//	q, err := sqlstrings.Sqlf(`
//		SELECT * FROM %v
//		WHERE name = %v
//	`, sqlstrings.Ident("users"), "alice")
//
//	res, err := q.ToSQL(nil)
//	// res.SQL:      SELECT * FROM "users"\nWHERE name = ?
//	// res.Bindings: [alice]
//
//	s, err := q.Inline(nil)
//	// SELECT * FROM "users"\nWHERE name = 'alice'
//
// The common indentation of a template is removed, so statements can be
// written indented inside Go code.
//
// # Binding Order
//
// The Nth placeholder in a rendered statement always corresponds to the Nth
// binding. Bindings are collected depth-first, left to right.
//
// # Dialects
//
// Options carries the escapers used by a render. The defaults quote
// identifiers with double quotes and strings with single quotes using
// backslash escapes. The dialect package provides alternatives and rewrites
// placeholders for drivers that expect $1-style parameters:
//
//	d, _ := dialect.Lookup("postgres")
//	res, err := d.Render(q, nil)
package sqlstrings
