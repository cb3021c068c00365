package sqlstrings

import "errors"

// Sentinel errors for the failure modes of building and rendering fragments.
// Every failure is a precondition violation reported immediately: a render
// either returns a complete Result or one of these errors, never a partial
// statement.
//
// Errors returned by this package wrap a sentinel with details about the
// offending input. Use the Is*Err helpers (or errors.Is) to classify them.
var (
	// ErrInvalidArgument is returned when a combinator receives input of the
	// wrong shape, such as a template whose literal parts do not line up with
	// its values, or a clause with more than one conditional value.
	ErrInvalidArgument = errors.New("sqlstrings: invalid argument")

	// ErrInvalidState is returned by the evaluator when it is asked to render
	// something that is not a fragment, or a fragment that has no render
	// behaviour (a nil pointer or a zero-value Template).
	ErrInvalidState = errors.New("sqlstrings: invalid state")

	// ErrDepthExceeded is returned when nested evaluation goes deeper than
	// MaxDepth levels.
	ErrDepthExceeded = errors.New("sqlstrings: maximum render depth exceeded")
)

// IsInvalidArgumentErr returns true if err is or wraps ErrInvalidArgument.
func IsInvalidArgumentErr(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInvalidStateErr returns true if err is or wraps ErrInvalidState.
func IsInvalidStateErr(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsDepthExceededErr returns true if err is or wraps ErrDepthExceeded.
func IsDepthExceededErr(err error) bool {
	return errors.Is(err, ErrDepthExceeded)
}
