package sqlstrings

import "fmt"

// Kind identifies which render rules apply to a Fragment.
type Kind uint8

const (
	KindRaw Kind = iota + 1
	KindIdent
	KindParam
	KindParameterize
	KindColumnize
	KindLines
	KindClause
	KindFn
	KindTemplate
)

var kindNames = [...]string{
	KindRaw:          "raw",
	KindIdent:        "ident",
	KindParam:        "param",
	KindParameterize: "parameterize",
	KindColumnize:    "columnize",
	KindLines:        "lines",
	KindClause:       "clause",
	KindFn:           "fn",
	KindTemplate:     "sql",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Fragment is an immutable unit of composable SQL. The set of fragments is
// closed: values are created only by the constructors in this package (Raw,
// Ident, Param, Parameterize, Columnize, Lines, Clause, Fn, SQL, Sqlf).
//
// Every Fragment implements fmt.Stringer by rendering itself inline with the
// default escapers.
type Fragment interface {
	fmt.Stringer

	// Kind returns the fragment's discriminant.
	Kind() Kind

	// renderable reports whether the fragment carries render behaviour.
	// Nil pointers and zero-value templates do not.
	renderable() bool

	// render produces either a terminal Result or another Fragment that the
	// evaluator resolves in its place.
	render(ev *evaluator, opts *Options) (Result, Fragment, error)
}

// Undefined is an absent value. It renders to empty text with no bindings,
// whereas nil renders as the NULL keyword.
var Undefined undefined

type undefined struct{}

func (undefined) String() string { return "" }

// coerce promotes a plain interpolated value to a Param. nil, Undefined and
// fragments are left for the evaluator to resolve.
func coerce(v any) any {
	switch v.(type) {
	case nil, undefined, Fragment:
		return v
	}
	return Param(v)
}

// inlineString renders f with parameterization off for fmt.Stringer.
func inlineString(f Fragment) string {
	res, err := ToSQL(f, &Options{Inline: true})
	if err != nil {
		return fmt.Sprintf("%%!v(%v)", err)
	}
	return res.SQL
}
