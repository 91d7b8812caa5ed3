package s3tc

import "errors"

// ErrorCode classifies decoder API failures.
type ErrorCode uint32

const (
	// Success is the zero code; it is never carried by a non-nil error.
	Success ErrorCode = 0

	// ErrBadParam reports an invalid argument, such as a non-positive
	// image dimension or a nil buffer.
	ErrBadParam ErrorCode = 1

	// ErrSmallBuffer reports an input or output buffer smaller than the
	// size required for the requested image dimensions.
	ErrSmallBuffer ErrorCode = 2

	// ErrBadContainer reports a malformed or non-BC2 DDS container.
	ErrBadContainer ErrorCode = 3
)

func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "success"
	case ErrBadParam:
		return "bad parameter"
	case ErrSmallBuffer:
		return "buffer too small"
	case ErrBadContainer:
		return "bad container"
	default:
		return "unknown error"
	}
}

// Error is a typed error carrying an ErrorCode.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	return "s3tc: " + e.Code.String()
}

// ErrorCodeOf returns the code carried by err, or Success for nil.
//
// For non-*Error errors it returns ErrBadParam as a conservative fallback.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrBadParam
}

func newError(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
