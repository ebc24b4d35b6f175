package check

import (
	"errors"

	"github.com/ib-77/ropmatch/pkg/rop/codec"
)

// MismatchError is the failure produced by If.
type MismatchError struct {
	Message string
	Value   any
}

func (e *MismatchError) Error() string {
	return e.Message + ": " + codec.Stringify(e.Value)
}

func (e *MismatchError) String() string {
	return e.Error()
}

// RejectedError carries the rejected value itself.
type RejectedError struct {
	Value any
}

// Error renders strings verbatim, errors by their message and everything
// else as JSON.
func (e *RejectedError) Error() string {
	switch v := e.Value.(type) {
	case string:
		return v
	case error:
		return v.Error()
	}
	return codec.Stringify(e.Value)
}

func (e *RejectedError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func (e *RejectedError) String() string {
	return e.Error()
}

// Rejected returns the value a check failed with: the subject for a
// MismatchError, the carried value for a RejectedError, err otherwise.
func Rejected(err error) any {
	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		return mismatch.Value
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Value
	}
	return err
}
