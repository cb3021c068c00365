// Package dialect provides escapers and placeholder styles for specific
// databases. A Dialect plugs into sqlstrings.Options; fragments themselves
// are dialect-agnostic.
//
//	pg := dialect.Postgres
//	res, err := pg.Render(query, nil)
//	rows, err := db.QueryContext(ctx, res.SQL, res.Bindings...)
package dialect

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/pthm/sqlstrings"
	"github.com/pthm/sqlstrings/internal/escape"
)

// Dialect bundles the escaping rules and placeholder style of one database.
type Dialect struct {
	// Name is the lookup key, e.g. "postgres".
	Name string

	// Escape renders a value as a literal when inlining.
	Escape func(value any, timezone string) string

	// EscapeID renders a possibly dotted identifier.
	EscapeID func(name string) string

	// Placeholder returns the text for the nth (1-based) binding. Nil keeps
	// the "?" placeholders produced by the evaluator.
	Placeholder func(n int) string

	// backslashEscapes reports whether Rebind must honour backslash escapes
	// inside every single-quoted string, not only E'' strings.
	backslashEscapes bool
}

var (
	// Default uses the rules sqlstrings applies when Options leave the
	// escapers unset.
	Default = &Dialect{
		Name:             "default",
		Escape:           escape.Literal,
		EscapeID:         escape.Identifier,
		backslashEscapes: true,
	}

	// Postgres quotes identifiers with pgx, strings with lib/pq, and numbers
	// placeholders $1, $2, ...
	Postgres = &Dialect{
		Name:        "postgres",
		Escape:      postgresRules.Literal,
		EscapeID:    postgresIdentifier,
		Placeholder: dollarPlaceholder,
	}

	// MySQL quotes identifiers with backticks and keeps backslash-escaped
	// string literals.
	MySQL = &Dialect{
		Name: "mysql",
		Escape: escape.Rules{
			String:     escape.String,
			Binary:     escape.Binary,
			Structural: escape.String,
		}.Literal,
		EscapeID:         mysqlIdentifier,
		backslashEscapes: true,
	}

	// SQLite quotes identifiers with double quotes and strings with single
	// quotes, doubling embedded quote characters.
	SQLite = &Dialect{
		Name:     "sqlite",
		Escape:   sqliteRules.Literal,
		EscapeID: sqliteIdentifier,
	}
)

var dialects = map[string]*Dialect{
	"default":    Default,
	"postgres":   Postgres,
	"postgresql": Postgres,
	"pgx":        Postgres,
	"mysql":      MySQL,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
}

// Lookup returns the dialect registered under name. Matching is case
// insensitive and accepts common driver names ("pgx", "sqlite3").
func Lookup(name string) (*Dialect, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown dialect %q (known: %s)",
			sqlstrings.ErrInvalidArgument, name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the registered lookup keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns a copy of base with the dialect's escapers installed.
func (d *Dialect) Options(base *sqlstrings.Options) *sqlstrings.Options {
	var opts sqlstrings.Options
	if base != nil {
		opts = *base
	}
	opts.Escape = d.Escape
	opts.EscapeID = d.EscapeID
	return &opts
}

// Render evaluates f with the dialect's escapers and rewrites placeholders
// into the dialect's style.
func (d *Dialect) Render(f any, opts *sqlstrings.Options) (sqlstrings.Result, error) {
	res, err := sqlstrings.ToSQL(f, d.Options(opts))
	if err != nil {
		return sqlstrings.Result{}, err
	}
	res.SQL = d.Rebind(res.SQL)
	return res, nil
}

func (d *Dialect) String() string {
	return d.Name
}

// =============================================================================
// Postgres
// =============================================================================

var postgresRules = escape.Rules{
	String:     pq.QuoteLiteral,
	Binary:     postgresBytea,
	Structural: pq.QuoteLiteral,
}

func postgresIdentifier(name string) string {
	return escape.Segments(name, func(segment string) string {
		return pgx.Identifier{segment}.Sanitize()
	})
}

func postgresBytea(b []byte) string {
	return `'\x` + hex.EncodeToString(b) + `'::bytea`
}

func dollarPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// =============================================================================
// MySQL
// =============================================================================

func mysqlIdentifier(name string) string {
	return escape.Segments(name, func(segment string) string {
		return "`" + strings.ReplaceAll(segment, "`", "``") + "`"
	})
}

// =============================================================================
// SQLite
// =============================================================================

var sqliteRules = escape.Rules{
	String:     sqliteString,
	Binary:     escape.Binary,
	Structural: sqliteString,
}

func sqliteIdentifier(name string) string {
	return escape.Segments(name, func(segment string) string {
		return `"` + strings.ReplaceAll(segment, `"`, `""`) + `"`
	})
}

func sqliteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
