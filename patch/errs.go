package patch

import (
	"errors"
	"fmt"

	"github.com/signadot/go-mutate/ir"
)

var (
	ErrMalformedPatch   = errors.New("malformed patch")
	ErrPathNotFound     = errors.New("path not found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrUnsupportedPatch = errors.New("unsupported patch")
)

// Error locates a failure to validate or apply a patch.
type Error struct {
	Path   ir.Path
	Action Action
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Action, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(path ir.Path, a Action, err error, format string, args ...any) *Error {
	if format != "" {
		err = fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
	}
	return &Error{Path: path, Action: a, Err: err}
}
