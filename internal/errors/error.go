package errors

import (
	"fmt"
	"runtime/debug"
)

const CodeNotFound = "not_found"

type InternalError struct {
	Err      error  `json:"-"`
	IsPublic bool   `json:"-"`
	Code     string `json:"-"`
	Message  string `json:"message"`
	Trace    string `json:"-"`
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// ErrorCode lets dispatch.ErrorCode classify the error without importing
// this package.
func (e *InternalError) ErrorCode() string {
	return e.Code
}

func (e *InternalError) PublicMessage() (string, bool) {
	return e.Message, e.IsPublic
}

func NewInternalError(err error, mes string, public bool) *InternalError {
	return &InternalError{
		Err:      err,
		IsPublic: public,
		Message:  mes,
		Trace:    fmt.Sprintf("%s\n%s", mes, debug.Stack()),
	}
}

// NotFound builds a public not-found error for the entity kind and id.
func NotFound(err error, kind, id string) *InternalError {
	e := NewInternalError(err, fmt.Sprintf("%s %q not found", kind, id), true)
	e.Code = CodeNotFound
	return e
}
