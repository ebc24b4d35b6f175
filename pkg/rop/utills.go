package rop

import (
	"context"
	"errors"
	"reflect"
)

// IsNil reports a nil interface or a nil pointer, map, slice, func or chan
// stored in one.
func IsNil(i any) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// IsError reports whether v represents a failure: a non-nil error value.
func IsError(v any) bool {
	err, ok := v.(error)
	return ok && !IsNil(err)
}

func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
