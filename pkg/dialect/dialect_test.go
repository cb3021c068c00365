package dialect_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/sqlstrings"
	"github.com/pthm/sqlstrings/pkg/dialect"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want *dialect.Dialect
	}{
		{name: "default", want: dialect.Default},
		{name: "postgres", want: dialect.Postgres},
		{name: "PostgreSQL", want: dialect.Postgres},
		{name: "pgx", want: dialect.Postgres},
		{name: "mysql", want: dialect.MySQL},
		{name: " sqlite3 ", want: dialect.SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dialect.Lookup(tt.name)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}

	_, err := dialect.Lookup("oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, sqlstrings.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "postgres")
}

func TestNames(t *testing.T) {
	names := dialect.Names()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "postgres")
	assert.Contains(t, names, "sqlite")
}

func TestEscapeID(t *testing.T) {
	tests := []struct {
		dialect *dialect.Dialect
		in      string
		want    string
	}{
		{dialect: dialect.Default, in: "users.name", want: `"users"."name"`},
		{dialect: dialect.Postgres, in: "users.name", want: `"users"."name"`},
		{dialect: dialect.Postgres, in: `we"ird`, want: `"we""ird"`},
		{dialect: dialect.Postgres, in: "users.*", want: `"users".*`},
		{dialect: dialect.MySQL, in: "users.name", want: "`users`.`name`"},
		{dialect: dialect.MySQL, in: "a`b", want: "`a``b`"},
		{dialect: dialect.MySQL, in: "t.*", want: "`t`.*"},
		{dialect: dialect.SQLite, in: "main.users", want: `"main"."users"`},
		{dialect: dialect.SQLite, in: `a"b`, want: `"a""b"`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.EscapeID(tt.in))
		})
	}
}

func TestEscape(t *testing.T) {
	at := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		dialect *dialect.Dialect
		value   any
		want    string
	}{
		{name: "postgres quote", dialect: dialect.Postgres, value: "it's", want: `'it''s'`},
		{name: "postgres backslash", dialect: dialect.Postgres, value: `a\b`, want: ` E'a\\b'`},
		{name: "postgres bytea", dialect: dialect.Postgres, value: []byte{0xde, 0xad}, want: `'\xdead'::bytea`},
		{name: "postgres json", dialect: dialect.Postgres, value: map[string]int{"a": 1}, want: `'{"a":1}'`},
		{name: "postgres null", dialect: dialect.Postgres, value: nil, want: "NULL"},
		{name: "postgres number", dialect: dialect.Postgres, value: 5, want: "5"},
		{name: "postgres date", dialect: dialect.Postgres, value: at, want: "'2020-01-02 03:04:05.000'"},
		{name: "mysql quote", dialect: dialect.MySQL, value: "it's", want: `'it\'s'`},
		{name: "mysql json", dialect: dialect.MySQL, value: map[string]int{"a": 1}, want: `'{\"a\":1}'`},
		{name: "mysql bytes", dialect: dialect.MySQL, value: []byte{0x01}, want: "X'01'"},
		{name: "sqlite quote", dialect: dialect.SQLite, value: "it's", want: `'it''s'`},
		{name: "sqlite backslash untouched", dialect: dialect.SQLite, value: `a\b`, want: `'a\b'`},
		{name: "sqlite bytes", dialect: dialect.SQLite, value: []byte{0xde, 0xad}, want: "X'dead'"},
		{name: "sqlite json", dialect: dialect.SQLite, value: []string{"x"}, want: `'["x"]'`},
		{name: "default quote", dialect: dialect.Default, value: "it's", want: `'it\'s'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.Escape(tt.value, "Z"))
		})
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no placeholders", in: "SELECT 1", want: "SELECT 1"},
		{name: "sequential", in: "a = ? AND b = ?", want: "a = $1 AND b = $2"},
		{name: "adjacent", in: "(?,?)", want: "($1,$2)"},
		{name: "single quoted", in: "'?' = ?", want: "'?' = $1"},
		{name: "doubled quote", in: "'it''s ?' = ?", want: "'it''s ?' = $1"},
		{name: "standard string ignores backslash", in: `'a\' = ?`, want: `'a\' = $1`},
		{name: "escape string", in: `E'\' ?' = ?`, want: `E'\' ?' = $1`},
		{name: "double quoted", in: `"col?" = ?`, want: `"col?" = $1`},
		{name: "line comment", in: "-- why?\nx = ?", want: "-- why?\nx = $1"},
		{name: "block comment", in: "/* ? /* ? */ ? */ x = ?", want: "/* ? /* ? */ ? */ x = $1"},
		{name: "unterminated string", in: "x = ? AND y = '?", want: "x = $1 AND y = '?"},
		{name: "ident ending in e", in: "name'?' = ?", want: "name'?' = $1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dialect.Postgres.Rebind(tt.in))
		})
	}
}

func TestRebind_QuestionMarkDialects(t *testing.T) {
	for _, d := range []*dialect.Dialect{dialect.Default, dialect.MySQL, dialect.SQLite} {
		t.Run(d.Name, func(t *testing.T) {
			assert.Equal(t, "a = ? AND b = '?'", d.Rebind("a = ? AND b = '?'"))
		})
	}
}

func TestOptions(t *testing.T) {
	base := &sqlstrings.Options{Inline: true, Timezone: "+02:00", Method: "select"}
	opts := dialect.MySQL.Options(base)

	assert.True(t, opts.Inline)
	assert.Equal(t, "+02:00", opts.Timezone)
	assert.Equal(t, "select", opts.Method)
	assert.Equal(t, "`t`", opts.EscapeID("t"))
	assert.Nil(t, base.EscapeID, "base options must not be modified")

	opts = dialect.Postgres.Options(nil)
	assert.False(t, opts.Inline)
	assert.Equal(t, `'x'`, opts.Escape("x", ""))
}

func TestRender(t *testing.T) {
	q := sqlstrings.Must(sqlstrings.Sqlf(
		"SELECT * FROM %v WHERE a = %v AND b IN (%v) AND c = '?'",
		sqlstrings.Ident("t"), 1, sqlstrings.Parameterize([]int{2, 3}),
	))

	res, err := dialect.Postgres.Render(q, nil)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "t" WHERE a = $1 AND b IN ($2, $3) AND c = '?'`, res.SQL)
	assert.Equal(t, []any{1, 2, 3}, res.Bindings)

	res, err = dialect.MySQL.Render(q, nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE a = ? AND b IN (?, ?) AND c = '?'", res.SQL)

	res, err = dialect.Postgres.Render(sqlstrings.Must(sqlstrings.Sqlf("name = %v", "it's")), &sqlstrings.Options{Inline: true})
	require.NoError(t, err)
	assert.Equal(t, "name = 'it''s'", res.SQL)
	assert.Empty(t, res.Bindings)
}

func TestRender_Error(t *testing.T) {
	_, err := dialect.Postgres.Render(42, nil)
	assert.ErrorIs(t, err, sqlstrings.ErrInvalidState)
}

func TestString(t *testing.T) {
	assert.Equal(t, "postgres", dialect.Postgres.String())
}
