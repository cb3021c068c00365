package sqlstrings_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/sqlstrings"
)

func render(t *testing.T, f any, opts *sqlstrings.Options) sqlstrings.Result {
	t.Helper()
	res, err := sqlstrings.ToSQL(f, opts)
	require.NoError(t, err)
	return res
}

func TestRaw(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "text", value: "1", want: "1"},
		{name: "expression", value: "now()", want: "now()"},
		{name: "undefined", value: sqlstrings.Undefined, want: ""},
		{name: "nil", value: nil, want: "NULL"},
		{name: "int", value: 42, want: "42"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "bool", value: true, want: "true"},
		{name: "bytes", value: []byte("ab"), want: "ab"},
		{name: "stringer", value: time.Second, want: "1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sqlstrings.Raw(tt.value)
			assert.Equal(t, sqlstrings.KindRaw, f.Kind())

			res := render(t, f, nil)
			assert.Equal(t, tt.want, res.SQL)
			assert.Empty(t, res.Bindings)

			// Raw text is never escaped, even inline.
			res = render(t, f, &sqlstrings.Options{Inline: true})
			assert.Equal(t, tt.want, res.SQL)
		})
	}
}

func TestIdent(t *testing.T) {
	backticks := func(name string) string {
		out := "`"
		for _, c := range name {
			switch c {
			case '`':
				out += "``"
			case '.':
				out += "`.`"
			default:
				out += string(c)
			}
		}
		return out + "`"
	}

	tests := []struct {
		name string
		in   string
		opts *sqlstrings.Options
		want string
	}{
		{name: "simple", in: "users", want: `"users"`},
		{name: "dotted", in: "users.name", want: `"users"."name"`},
		{name: "star", in: "*", want: "*"},
		{name: "qualified star", in: "users.*", want: `"users".*`},
		{name: "custom escaper", in: "users.name", opts: &sqlstrings.Options{EscapeID: backticks}, want: "`users`.`name`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := render(t, sqlstrings.Ident(tt.in), tt.opts)
			assert.Equal(t, tt.want, res.SQL)
			assert.Empty(t, res.Bindings)
		})
	}

	assert.Equal(t, sqlstrings.KindIdent, sqlstrings.Ident("users").Kind())
	assert.Equal(t, sqlstrings.KindRaw, sqlstrings.Ident("*").Kind())
}

func TestIdent_NeverBound(t *testing.T) {
	res := render(t, sqlstrings.Ident("users"), &sqlstrings.Options{Inline: false})
	assert.Equal(t, `"users"`, res.SQL)
	assert.Nil(t, res.Bindings)
}

func TestParam(t *testing.T) {
	tmpl := sqlstrings.Must(sqlstrings.SQL([]string{"WHERE name = ", ""}, sqlstrings.Param("user")))

	res, err := tmpl.ToSQL(nil)
	require.NoError(t, err)
	assert.Equal(t, "WHERE name = ?", res.SQL)
	assert.Equal(t, []any{"user"}, res.Bindings)

	assert.Equal(t, "'user'", sqlstrings.Param("user").String())
	assert.Equal(t, "NULL", sqlstrings.Param(nil).String())
}

func TestParameterize(t *testing.T) {
	tests := []struct {
		name       string
		separator  []string
		wantSQL    string
		wantInline string
	}{
		{name: "default separator", wantSQL: "(?, ?, ?)", wantInline: "(1, 2, 3)"},
		{name: "custom separator", separator: []string{",\n"}, wantSQL: "(?,\n?,\n?)", wantInline: "(1,\n2,\n3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := sqlstrings.Must(sqlstrings.SQL(
				[]string{"(", ")"},
				sqlstrings.Parameterize([]int{1, 2, 3}, tt.separator...),
			))

			res, err := tmpl.ToSQL(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, res.SQL)
			assert.Equal(t, []any{1, 2, 3}, res.Bindings)

			assert.Equal(t, tt.wantInline, tmpl.String())
		})
	}
}

func TestParameterize_Empty(t *testing.T) {
	res := render(t, sqlstrings.Parameterize([]string{}), nil)
	assert.Equal(t, "", res.SQL)
	assert.Empty(t, res.Bindings)
}

func TestParameterize_InlineUsesTimezone(t *testing.T) {
	at := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
	res := render(t, sqlstrings.Parameterize([]time.Time{at}), &sqlstrings.Options{Inline: true, Timezone: "-01:00"})
	assert.Equal(t, "'2020-01-02 02:04:05.000'", res.SQL)
}

func TestParameterize_CopiesInput(t *testing.T) {
	values := []int{1, 2}
	f := sqlstrings.Parameterize(values)
	values[0] = 99

	res := render(t, f, nil)
	assert.Equal(t, []any{1, 2}, res.Bindings)
}

func TestColumnize(t *testing.T) {
	res := render(t, sqlstrings.Columnize([]string{"id", "users.name", "*"}), nil)
	assert.Equal(t, `"id", "users"."name", *`, res.SQL)
	assert.Empty(t, res.Bindings)

	res = render(t, sqlstrings.Columnize([]string{"a", "b"}, ",\n"), nil)
	assert.Equal(t, "\"a\",\n\"b\"", res.SQL)

	res = render(t, sqlstrings.Columnize(nil), nil)
	assert.Equal(t, "", res.SQL)
}

func TestLines(t *testing.T) {
	statements := []sqlstrings.Fragment{
		sqlstrings.Must(sqlstrings.SQL([]string{"WHERE name = ", ""}, "account")),
		sqlstrings.Must(sqlstrings.SQL([]string{"AND id = ", ""}, 2)),
		sqlstrings.Must(sqlstrings.SQL([]string{"OR (", ")"}, sqlstrings.Lines([]sqlstrings.Fragment{
			sqlstrings.Must(sqlstrings.SQL([]string{"id = ", ""}, 1)),
			sqlstrings.Must(sqlstrings.SQL([]string{"AND id = ", ""}, 2)),
		}, "\n  "))),
	}
	tmpl := sqlstrings.Must(sqlstrings.SQL([]string{"", ""}, sqlstrings.Lines(statements)))

	assert.Equal(t, "WHERE name = 'account'\nAND id = 2\nOR (\n  id = 1\n  AND id = 2\n)", tmpl.String())

	res, err := tmpl.ToSQL(nil)
	require.NoError(t, err)
	assert.Equal(t, "WHERE name = ?\nAND id = ?\nOR (\n  id = ?\n  AND id = ?\n)", res.SQL)
	assert.Equal(t, []any{"account", 2, 1, 2}, res.Bindings)
}

func TestLines_Separators(t *testing.T) {
	tests := []struct {
		name      string
		members   []sqlstrings.Fragment
		separator []string
		want      string
	}{
		{name: "empty", members: nil, want: ""},
		{name: "only empty members", members: []sqlstrings.Fragment{sqlstrings.Raw(""), sqlstrings.Raw(sqlstrings.Undefined)}, want: ""},
		{name: "single", members: []sqlstrings.Fragment{sqlstrings.Raw("a")}, want: "\na\n"},
		{name: "skips empty members", members: []sqlstrings.Fragment{sqlstrings.Raw(""), sqlstrings.Raw("a"), sqlstrings.Raw(""), sqlstrings.Raw("b"), sqlstrings.Raw("")}, want: "\na\nb\n"},
		{name: "trailing spaces trimmed", members: []sqlstrings.Fragment{sqlstrings.Raw("a"), sqlstrings.Raw("b")}, separator: []string{",  "}, want: ",  a,  b,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := render(t, sqlstrings.Lines(tt.members, tt.separator...), nil)
			assert.Equal(t, tt.want, res.SQL)
		})
	}
}

func TestClause(t *testing.T) {
	cond := sqlstrings.Must(sqlstrings.SQL([]string{"id = ", ""}, 1))

	tests := []struct {
		name         string
		value        any
		wantSQL      string
		wantBindings []any
	}{
		{name: "non-empty", value: cond, wantSQL: "SELECT * FROM t WHERE id = ?", wantBindings: []any{1}},
		{name: "empty lines", value: sqlstrings.Lines(nil), wantSQL: "SELECT * FROM t", wantBindings: []any{}},
		{name: "empty raw", value: sqlstrings.Raw(""), wantSQL: "SELECT * FROM t", wantBindings: []any{}},
		{name: "undefined", value: sqlstrings.Undefined, wantSQL: "SELECT * FROM t", wantBindings: []any{}},
		{name: "plain value", value: 5, wantSQL: "SELECT * FROM t WHERE ?", wantBindings: []any{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, err := sqlstrings.Clause([]string{"WHERE ", ""}, tt.value)
			require.NoError(t, err)
			assert.Equal(t, sqlstrings.KindClause, where.Kind())

			tmpl := sqlstrings.Must(sqlstrings.SQL([]string{"SELECT * FROM t ", ""}, where))
			res, err := tmpl.ToSQL(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, res.SQL)
			assert.Equal(t, tt.wantBindings, res.Bindings)
		})
	}
}

func TestClause_InvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		parts  []string
		values []any
	}{
		{name: "no values", parts: []string{"WHERE ", ""}},
		{name: "two values", parts: []string{"WHERE ", " AND ", ""}, values: []any{1, 2}},
		{name: "wrong part count", parts: []string{"WHERE "}, values: []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sqlstrings.Clause(tt.parts, tt.values...)
			assert.True(t, errors.Is(err, sqlstrings.ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestFn(t *testing.T) {
	count, err := sqlstrings.Fn([]string{"count(", ")"}, "tbl")
	require.NoError(t, err)
	assert.Equal(t, sqlstrings.KindFn, count.Kind())
	assert.Equal(t, `count("tbl")`, count.String())

	coalesce := sqlstrings.Must(sqlstrings.Fn([]string{"coalesce(", ", ", ")"}, "a.x", "*"))
	res := render(t, coalesce, nil)
	assert.Equal(t, `coalesce("a"."x", *)`, res.SQL)
	assert.Empty(t, res.Bindings)
	assert.Equal(t, "unknown", res.Method)

	_, err = sqlstrings.Fn(nil, "tbl")
	assert.ErrorIs(t, err, sqlstrings.ErrInvalidArgument)

	_, err = sqlstrings.Fn([]string{"count("}, "tbl")
	assert.ErrorIs(t, err, sqlstrings.ErrInvalidArgument)
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() {
		sqlstrings.Must(sqlstrings.SQL([]string{"SELECT 1"}))
	})
	assert.Panics(t, func() {
		sqlstrings.Must(sqlstrings.SQL(nil))
	})
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind sqlstrings.Kind
		want string
	}{
		{sqlstrings.KindRaw, "raw"},
		{sqlstrings.KindIdent, "ident"},
		{sqlstrings.KindParam, "param"},
		{sqlstrings.KindParameterize, "parameterize"},
		{sqlstrings.KindColumnize, "columnize"},
		{sqlstrings.KindLines, "lines"},
		{sqlstrings.KindClause, "clause"},
		{sqlstrings.KindFn, "fn"},
		{sqlstrings.KindTemplate, "sql"},
		{sqlstrings.Kind(0), "Kind(0)"},
		{sqlstrings.Kind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}
