package admission

import (
	"errors"
	"fmt"
)

var ErrMalformedRequest = errors.New("malformed admission request")

// MalformedRequestError is returned when a payload is not a usable
// AdmissionReview. No verdict must be produced for it.
type MalformedRequestError struct {
	Reason string
	Err    error
}

func (e *MalformedRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedRequest, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedRequest, e.Reason)
}

func (e *MalformedRequestError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRequest, e.Err}
	}
	return []error{ErrMalformedRequest}
}

func malformed(reason string, err error) error {
	return &MalformedRequestError{Reason: reason, Err: err}
}

func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedRequest)
}
