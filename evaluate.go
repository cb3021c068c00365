package sqlstrings

import (
	"fmt"

	"github.com/pthm/sqlstrings/internal/escape"
)

// MaxDepth bounds nested evaluation. Templates inside templates, members of
// Lines and fragments that resolve to other fragments each count as a level.
const MaxDepth = 256

// Placeholder is emitted for every binding when parameterizing.
const Placeholder = "?"

// DefaultMethod is the method reported by template results when the options
// do not name one.
const DefaultMethod = "unknown"

// Options configures a single render. The zero value (or a nil *Options)
// parameterizes values, escapes with the default double-quote identifier and
// single-quote literal rules, and formats dates in UTC.
//
// Options are only read during a render.
type Options struct {
	// Escape renders a value as literal SQL when Inline is set.
	// Defaults to backslash-escaped single-quoted literals.
	Escape func(value any, timezone string) string

	// EscapeID renders an identifier. Custom escapers must split on "." the
	// same way the default does if dotted identifiers are used.
	// Defaults to double-quoted segments.
	EscapeID func(name string) string

	// Inline renders values as escaped literals instead of placeholders and
	// bindings.
	Inline bool

	// Timezone controls date formatting: "local", "Z" (default), or an offset
	// such as "+02:00".
	Timezone string

	// Preparing is passed through to fragments untouched.
	Preparing bool

	// Method is reported on template results. Defaults to "unknown".
	Method string
}

// normalize returns a copy of o with defaults filled in.
func (o *Options) normalize() Options {
	var n Options
	if o != nil {
		n = *o
	}
	if n.Escape == nil {
		n.Escape = escape.Literal
	}
	if n.EscapeID == nil {
		n.EscapeID = escape.Identifier
	}
	if n.Timezone == "" {
		n.Timezone = escape.TimezoneUTC
	}
	return n
}

// Result is a rendered fragment: SQL text plus the values bound to its
// placeholders, in placeholder order.
type Result struct {
	SQL      string
	Bindings []any

	// Method and Hooks are only populated on template results. Hooks is a
	// reserved extension point and is always empty.
	Method string
	Hooks  map[string]any
}

func (r Result) clone() Result {
	out := r
	if r.Bindings != nil {
		out.Bindings = append(make([]any, 0, len(r.Bindings)), r.Bindings...)
	}
	if r.Hooks != nil {
		out.Hooks = make(map[string]any, len(r.Hooks))
		for k, v := range r.Hooks {
			out.Hooks[k] = v
		}
	}
	return out
}

// ToSQL renders v. It accepts:
//
//   - nil, rendered as the NULL keyword;
//   - Undefined, rendered as empty text;
//   - a string, rendered as a placeholder plus binding (or an escaped literal
//     when opts.Inline is set);
//   - any Fragment.
//
// Any other value fails with ErrInvalidState. Interpolating plain values into
// a template promotes them to parameters; ToSQL itself does not.
func ToSQL(v any, opts *Options) (Result, error) {
	ev := &evaluator{opts: opts}
	return ev.eval(v)
}

// evaluator carries the caller's options and the current nesting depth
// through a single render.
type evaluator struct {
	opts  *Options
	depth int
}

func (ev *evaluator) eval(v any) (Result, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > MaxDepth {
		return Result{}, fmt.Errorf("%w: more than %d levels", ErrDepthExceeded, MaxDepth)
	}

	opts := ev.opts.normalize()

	switch v := v.(type) {
	case nil:
		return Result{SQL: escape.Null}, nil
	case undefined:
		return Result{}, nil
	case string:
		if opts.Inline {
			return Result{SQL: opts.Escape(v, opts.Timezone)}, nil
		}
		return Result{SQL: Placeholder, Bindings: []any{v}}, nil
	case Fragment:
		if !v.renderable() {
			return Result{}, fmt.Errorf("%w: %s fragment has no render function", ErrInvalidState, v.Kind())
		}

		log := logger()
		log.Debug().Stringer("kind", v.Kind()).Int("depth", ev.depth).Msg("evaluating fragment")

		res, next, err := v.render(ev, &opts)
		if err != nil {
			return Result{}, err
		}
		if next != nil {
			// Resolved against the caller's options, not the normalized copy.
			return ev.eval(next)
		}
		return res, nil
	default:
		return Result{}, fmt.Errorf("%w: cannot evaluate non-tagged value of type %T", ErrInvalidState, v)
	}
}
