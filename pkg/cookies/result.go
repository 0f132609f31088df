package cookies

import (
	"errors"
	"fmt"
)

// ImportResult is the outcome of one import attempt.
type ImportResult int

const (
	// Success means every cookie of the store was added to the jar.
	Success ImportResult = iota
	// Unavailable means the store does not exist or does not apply. Not an error.
	Unavailable
	// AccessError means the store could not be read (I/O, permission, security).
	AccessError
	// ConvertError means the store was readable but its content was malformed.
	ConvertError
	// UnknownError means an unclassified failure.
	UnknownError
)

func (r ImportResult) String() string {
	switch r {
	case Success:
		return "Success"
	case Unavailable:
		return "Unavailable"
	case AccessError:
		return "AccessError"
	case ConvertError:
		return "ConvertError"
	default:
		return "UnknownError"
	}
}

// Retryable reports whether repeating the import may succeed without user
// action. Access failures are usually a browser holding a lock.
func (r ImportResult) Retryable() bool {
	return r == AccessError
}

// ImportError is a classified import failure. It carries the ImportResult the
// importer reports and the underlying cause, if any.
type ImportError struct {
	Result ImportResult
	Msg    string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Result, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Result, e.Msg)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates an ImportError with the given classification.
func NewImportError(result ImportResult, msg string, err error) *ImportError {
	return &ImportError{Result: result, Msg: msg, Err: err}
}

func accessError(msg string, err error) *ImportError {
	return NewImportError(AccessError, msg, err)
}

func convertError(msg string, err error) *ImportError {
	return NewImportError(ConvertError, msg, err)
}

// ResultOf maps an error returned by an extraction step to its ImportResult.
// A nil error is Success; an error chain holding an *ImportError yields the
// first classification found; anything else is UnknownError.
func ResultOf(err error) ImportResult {
	if err == nil {
		return Success
	}
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Result
	}
	return UnknownError
}
