package dispatch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

const DefaultErrorMessage = "An internal error has occurred. Please contact technical support."

// Error is the application error. Op chains the operations the error passed
// through, Code is one of the E* constants.
type Error struct {
	Op      string
	Code    string
	Message string
	Fields  map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	var buf strings.Builder

	if e.Op != "" {
		fmt.Fprintf(&buf, "%s: ", e.Op)
	}

	if e.Err != nil {
		buf.WriteString(e.Err.Error())
	} else {
		if e.Code != "" {
			fmt.Fprintf(&buf, "<%s> ", e.Code)
		}
		buf.WriteString(e.Message)
	}

	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// OpError wraps err with the operation name.
func OpError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Op: op, Err: err}
}

// ErrorWithCode wraps err and assigns it a code.
func ErrorWithCode(err error, code string) error {
	if err == nil {
		return nil
	}

	return &Error{Code: code, Err: err}
}

// Errorf returns an error with code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the first non-empty code in the chain. Errors outside
// the application are EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code != "" {
			return e.Code
		}
		if e.Err != nil {
			return ErrorCode(e.Err)
		}
	}

	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) && coded.ErrorCode() != "" {
		return coded.ErrorCode()
	}

	return EINTERNAL
}

// ErrorMessage returns the first non-empty human readable message in the
// chain.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return ErrorMessage(e.Err)
		}
	}

	var public interface{ PublicMessage() (string, bool) }
	if errors.As(err, &public) {
		if msg, ok := public.PublicMessage(); ok {
			return msg
		}
	}

	return DefaultErrorMessage
}

var codeToHTTPStatus = map[string]int{
	ECONFLICT: http.StatusConflict,
	EINTERNAL: http.StatusInternalServerError,
	EINVALID:  http.StatusBadRequest,
	ENOTFOUND: http.StatusNotFound,
}

func ErrCodeToHTTPStatus(err error) int {
	if status, ok := codeToHTTPStatus[ErrorCode(err)]; ok {
		return status
	}

	return http.StatusInternalServerError
}
