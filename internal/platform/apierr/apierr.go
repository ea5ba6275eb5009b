package apierr

import "fmt"

type Error struct {
	Status  int
	Code    string
	Err     error
	Details map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// WithDetails attaches a field-keyed detail map to the error.
func (e *Error) WithDetails(details map[string]string) *Error {
	if e == nil {
		return nil
	}
	e.Details = details
	return e
}
