package sqlstrings

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var (
	leadingBlankLine = regexp.MustCompile(`^[ \t]*\n`)
	leadingIndent    = regexp.MustCompile(`^[ \t]+`)
)

// Template is the primary composer: literal parts interleaved with
// interpolated values. It is built by SQL or Sqlf.
//
// A Template remembers the result of its most recent ToSQL call and returns
// it again while the options are unchanged. It is safe for concurrent use.
type Template struct {
	parts  []string
	values []any

	mu   sync.Mutex
	memo *memo
}

type memo struct {
	key    memoKey
	result Result
}

// memoKey is the shallow, comparable view of Options. Escape functions are
// not comparable, so options carrying them are never memoized.
type memoKey struct {
	inline    bool
	timezone  string
	preparing bool
	method    string
}

func keyOf(opts *Options) (memoKey, bool) {
	if opts == nil {
		return memoKey{}, true
	}
	if opts.Escape != nil || opts.EscapeID != nil {
		return memoKey{}, false
	}
	return memoKey{
		inline:    opts.Inline,
		timezone:  opts.Timezone,
		preparing: opts.Preparing,
		method:    opts.Method,
	}, true
}

// SQL builds a Template from literal parts and the values between them.
// There must be exactly one more part than values:
//
//	tmpl, err := sqlstrings.SQL(
//		[]string{"SELECT * FROM ", " WHERE id = ", ""},
//		sqlstrings.Ident("users"), id,
//	)
//
// Values that are not fragments become parameters; nil renders as NULL and
// Undefined as nothing. Common leading indentation is stripped from the parts.
func SQL(parts []string, values ...any) (*Template, error) {
	if parts == nil {
		return nil, fmt.Errorf("%w: sql may only be used with literal parts, saw nil", ErrInvalidArgument)
	}
	if len(parts) != len(values)+1 {
		return nil, fmt.Errorf("%w: sql expects %d literal parts for %d values, saw %d",
			ErrInvalidArgument, len(values)+1, len(values), len(parts))
	}
	return &Template{
		parts:  dedent(parts),
		values: append([]any(nil), values...),
	}, nil
}

// ToSQL renders the template. Calling it again with equal options returns
// the remembered result without re-rendering.
func (t *Template) ToSQL(opts *Options) (Result, error) {
	if t == nil {
		return ToSQL(t, opts)
	}

	key, cacheable := keyOf(opts)
	if cacheable {
		t.mu.Lock()
		m := t.memo
		t.mu.Unlock()
		if m != nil && m.key == key {
			return m.result.clone(), nil
		}
	}

	res, err := ToSQL(t, opts)
	if err != nil {
		return Result{}, err
	}

	if cacheable {
		t.mu.Lock()
		t.memo = &memo{key: key, result: res.clone()}
		t.mu.Unlock()
	}
	return res, nil
}

// Inline renders the template with every value inlined as an escaped
// literal. Other options are honoured.
func (t *Template) Inline(opts *Options) (string, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.Inline = true
	res, err := t.ToSQL(&o)
	if err != nil {
		return "", err
	}
	return res.SQL, nil
}

func (t *Template) String() string {
	return inlineString(t)
}

func (*Template) Kind() Kind { return KindTemplate }

func (t *Template) renderable() bool {
	return t != nil && t.parts != nil
}

func (t *Template) render(ev *evaluator, opts *Options) (Result, Fragment, error) {
	results := make([]Result, len(t.values))
	for i, v := range t.values {
		res, err := ev.eval(coerce(v))
		if err != nil {
			return Result{}, nil, err
		}
		results[i] = res
	}
	return assemble(t.parts, results, opts), nil, nil
}

// dedent strips leading blank lines from the first part and removes the
// first part's leading indentation from every line of every part.
func dedent(parts []string) []string {
	first := parts[0]
	for leadingBlankLine.MatchString(first) {
		first = leadingBlankLine.ReplaceAllString(first, "")
	}

	indent := leadingIndent.FindString(first)
	if indent == "" {
		return append([]string(nil), parts...)
	}

	out := make([]string, len(parts))
	for i, part := range parts {
		lines := strings.Split(part, "\n")
		for j, line := range lines {
			lines[j] = strings.TrimPrefix(line, indent)
		}
		out[i] = strings.Join(lines, "\n")
	}
	return out
}

// assemble interleaves parts with rendered values. parts must have one more
// element than results.
func assemble(parts []string, results []Result, opts *Options) Result {
	var sb strings.Builder
	bindings := []any{}

	sb.WriteString(parts[0])
	for i, res := range results {
		bindings = append(bindings, res.Bindings...)
		sb.WriteString(res.SQL)
		sb.WriteString(parts[i+1])
	}

	method := opts.Method
	if method == "" {
		method = DefaultMethod
	}
	return Result{
		SQL:      strings.TrimSpace(sb.String()),
		Bindings: bindings,
		Method:   method,
		Hooks:    map[string]any{},
	}
}
