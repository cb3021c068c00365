package sqlstrings

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pthm/sqlstrings/internal/escape"
)

// Default separators.
const (
	ListSeparator  = ", "
	LinesSeparator = "\n"
)

func separatorOr(separator []string, def string) string {
	if len(separator) > 0 {
		return separator[0]
	}
	return def
}

// =============================================================================
// Raw
// =============================================================================

type rawFragment struct {
	text string
}

// Raw emits the text form of value verbatim. It is never escaped and never
// becomes a binding, so the caller is responsible for its safety.
//
// Undefined renders as empty text and nil as NULL.
func Raw(value any) Fragment {
	return rawFragment{text: rawText(value)}
}

func rawText(value any) string {
	switch v := value.(type) {
	case undefined:
		return ""
	case nil:
		return escape.Null
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return escape.Number(rv.Float(), 32)
	case reflect.Float64:
		return escape.Number(rv.Float(), 64)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(value)
}

func (rawFragment) Kind() Kind { return KindRaw }
func (rawFragment) renderable() bool { return true }
func (r rawFragment) String() string { return r.text }

func (r rawFragment) render(*evaluator, *Options) (Result, Fragment, error) {
	return Result{SQL: r.text}, nil, nil
}

// =============================================================================
// Ident
// =============================================================================

type identFragment struct {
	name string
}

// Ident marks name as an identifier. It is always inlined through the
// context's identifier escaper, never bound. "*" is emitted as Raw.
//
//	Ident("users.name") // "users"."name"
func Ident(name string) Fragment {
	if name == "*" {
		return Raw(name)
	}
	return identFragment{name: name}
}

func (identFragment) Kind() Kind { return KindIdent }
func (identFragment) renderable() bool { return true }
func (i identFragment) String() string { return inlineString(i) }

func (i identFragment) render(_ *evaluator, opts *Options) (Result, Fragment, error) {
	return Result{SQL: opts.EscapeID(i.name)}, nil, nil
}

// =============================================================================
// Param
// =============================================================================

type paramFragment struct {
	value any
}

// Param marks value as a parameter: a placeholder plus one binding, or the
// escaped literal when rendering inline. Plain values interpolated into a
// template are wrapped with Param automatically.
func Param(value any) Fragment {
	return paramFragment{value: value}
}

func (paramFragment) Kind() Kind { return KindParam }
func (paramFragment) renderable() bool { return true }
func (p paramFragment) String() string { return inlineString(p) }

func (p paramFragment) render(_ *evaluator, opts *Options) (Result, Fragment, error) {
	if opts.Inline {
		return Result{SQL: opts.Escape(p.value, opts.Timezone)}, nil, nil
	}
	return Result{SQL: Placeholder, Bindings: []any{p.value}}, nil, nil
}

// =============================================================================
// Parameterize
// =============================================================================

type parameterizeFragment struct {
	values    []any
	separator string
}

// Parameterize emits one parameter per value, joined by separator (default
// ", "). Bindings keep the order of values.
//
//	SQL([]string{"id IN (", ")"}, Parameterize([]int{1, 2, 3}))
//	// id IN (?, ?, ?) with bindings [1 2 3]
func Parameterize[T any](values []T, separator ...string) Fragment {
	copied := make([]any, len(values))
	for i, v := range values {
		copied[i] = v
	}
	return parameterizeFragment{values: copied, separator: separatorOr(separator, ListSeparator)}
}

func (parameterizeFragment) Kind() Kind { return KindParameterize }
func (parameterizeFragment) renderable() bool { return true }
func (p parameterizeFragment) String() string { return inlineString(p) }

func (p parameterizeFragment) render(_ *evaluator, opts *Options) (Result, Fragment, error) {
	var sb strings.Builder
	var bindings []any
	if !opts.Inline {
		bindings = make([]any, 0, len(p.values))
	}
	for i, v := range p.values {
		if i > 0 {
			sb.WriteString(p.separator)
		}
		if opts.Inline {
			sb.WriteString(opts.Escape(v, opts.Timezone))
			continue
		}
		sb.WriteString(Placeholder)
		bindings = append(bindings, v)
	}
	return Result{SQL: sb.String(), Bindings: bindings}, nil, nil
}

// =============================================================================
// Columnize
// =============================================================================

type columnizeFragment struct {
	columns   []string
	separator string
}

// Columnize emits each column as an escaped identifier, joined by separator
// (default ", "). It never produces bindings.
func Columnize(columns []string, separator ...string) Fragment {
	return columnizeFragment{
		columns:   append([]string(nil), columns...),
		separator: separatorOr(separator, ListSeparator),
	}
}

func (columnizeFragment) Kind() Kind { return KindColumnize }
func (columnizeFragment) renderable() bool { return true }
func (c columnizeFragment) String() string { return inlineString(c) }

func (c columnizeFragment) render(_ *evaluator, opts *Options) (Result, Fragment, error) {
	escaped := make([]string, len(c.columns))
	for i, col := range c.columns {
		escaped[i] = opts.EscapeID(col)
	}
	return Result{SQL: strings.Join(escaped, c.separator)}, nil, nil
}

// =============================================================================
// Lines
// =============================================================================

type linesFragment struct {
	members   []Fragment
	separator string
}

// Lines splits a statement over several lines. Each member that renders to
// non-empty text is preceded by separator (default "\n"), and a final
// separator with its trailing spaces trimmed closes the block, so an indented
// separator such as "\n  " leaves the closing line flush:
//
//	SQL([]string{"OR (", ")"}, Lines(conds, "\n  "))
//	// OR (
//	//   id = ?
//	//   AND id = ?
//	// )
//
// Members that render to empty text contribute no text, but their bindings are
// kept. When no member emits text the result is empty.
func Lines(fragments []Fragment, separator ...string) Fragment {
	return linesFragment{
		members:   append([]Fragment(nil), fragments...),
		separator: separatorOr(separator, LinesSeparator),
	}
}

func (linesFragment) Kind() Kind { return KindLines }
func (linesFragment) renderable() bool { return true }
func (l linesFragment) String() string { return inlineString(l) }

func (l linesFragment) render(ev *evaluator, _ *Options) (Result, Fragment, error) {
	var sb strings.Builder
	var bindings []any
	emitted := false

	for _, member := range l.members {
		res, err := ev.eval(member)
		if err != nil {
			return Result{}, nil, err
		}
		bindings = append(bindings, res.Bindings...)
		if res.SQL == "" {
			continue
		}
		sb.WriteString(l.separator)
		sb.WriteString(res.SQL)
		emitted = true
	}

	if emitted {
		sb.WriteString(strings.TrimRight(l.separator, " "))
	}
	return Result{SQL: sb.String(), Bindings: bindings}, nil, nil
}

// =============================================================================
// Clause
// =============================================================================

type clauseFragment struct {
	parts []string
	value any
}

// Clause is a template around exactly one conditional value. When the value
// renders to empty text the whole clause renders to nothing, dropping the
// surrounding wording:
//
//	where, _ := Clause([]string{"WHERE ", ""}, Lines(conds))
//	// "WHERE ..." when conds emit text, "" otherwise
//
// The value is evaluated once. Its bindings are kept even when it renders
// empty.
func Clause(parts []string, values ...any) (Fragment, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("%w: clause may only be used with a single conditional value, saw %d", ErrInvalidArgument, len(values))
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: clause expects 2 literal parts around its value, saw %d", ErrInvalidArgument, len(parts))
	}
	return clauseFragment{parts: dedent(parts), value: values[0]}, nil
}

func (clauseFragment) Kind() Kind { return KindClause }
func (clauseFragment) renderable() bool { return true }
func (c clauseFragment) String() string { return inlineString(c) }

func (c clauseFragment) render(ev *evaluator, opts *Options) (Result, Fragment, error) {
	inner, err := ev.eval(coerce(c.value))
	if err != nil {
		return Result{}, nil, err
	}
	if inner.SQL == "" {
		return Result{Bindings: inner.Bindings}, nil, nil
	}
	return assemble(c.parts, []Result{inner}, opts), nil, nil
}

// =============================================================================
// Fn
// =============================================================================

type fnFragment struct {
	tmpl *Template
}

// Fn builds a function call whose arguments are identifiers:
//
//	Fn([]string{"count(", ")"}, "tbl") // count("tbl")
func Fn(parts []string, names ...string) (Fragment, error) {
	if parts == nil {
		return nil, fmt.Errorf("%w: fn may only be used with literal parts, e.g. Fn([]string{\"count(\", \")\"}, name)", ErrInvalidArgument)
	}
	idents := make([]any, len(names))
	for i, name := range names {
		idents[i] = Ident(name)
	}
	tmpl, err := SQL(parts, idents...)
	if err != nil {
		return nil, err
	}
	return fnFragment{tmpl: tmpl}, nil
}

func (fnFragment) Kind() Kind { return KindFn }
func (f fnFragment) renderable() bool { return f.tmpl != nil }
func (f fnFragment) String() string { return inlineString(f) }

func (f fnFragment) render(*evaluator, *Options) (Result, Fragment, error) {
	return Result{}, f.tmpl, nil
}

// Must panics if err is non-nil. It is intended for templates known to be
// well formed at compile time:
//
//	var byID = sqlstrings.Must(sqlstrings.Sqlf("SELECT * FROM users WHERE id = %v", id))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
