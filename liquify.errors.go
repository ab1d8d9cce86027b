package liquify

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-liquify/internal"
)

// Position represents a location in the template source
type Position = internal.Position

// NewSyntaxError creates a syntax error with position context.
// Syntax errors are raised at parse time and are fatal.
func NewSyntaxError(msg string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeSyntax, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeSyntax, msg)
	}
	return err.
		WithMetadata(MetaKeyErrorCode, ErrCodeSyntax).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewTypeError creates a type error for a failed numeric coercion,
// raised at render time and propagated to the caller.
func NewTypeError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeType, ErrMsgTypeCoercion).
		WithMetadata(MetaKeyErrorCode, ErrCodeType)
}

// NewRenderError creates a render error wrapping an internal cause
func NewRenderError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgRenderFailed).
		WithMetadata(MetaKeyErrorCode, ErrCodeRender)
}

// IsSyntaxError reports whether an error is a template syntax error
func IsSyntaxError(err error) bool {
	return hasErrorCode(err, ErrCodeSyntax)
}

// IsTypeError reports whether an error is a coercion type error
func IsTypeError(err error) bool {
	return hasErrorCode(err, ErrCodeType)
}

// hasErrorCode checks the error-code metadata on a cuserr error
func hasErrorCode(err error, code string) bool {
	var cerr *cuserr.CustomError
	if !errors.As(err, &cerr) {
		return false
	}
	got, ok := cerr.GetMetadata(MetaKeyErrorCode)
	return ok && got == code
}

// wrapRenderError classifies an internal render failure: coercion
// failures surface as type errors, everything else as render errors.
func wrapRenderError(err error) error {
	var coercion *internal.CoercionError
	if errors.As(err, &coercion) {
		return NewTypeError(err)
	}
	return NewRenderError(err)
}
