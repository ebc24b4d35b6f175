package check

import (
	"context"

	"github.com/ib-77/ropmatch/pkg/rop"
	"github.com/ib-77/ropmatch/pkg/rop/compare"
	"github.com/ib-77/ropmatch/pkg/rop/lite"
	"github.com/ib-77/ropmatch/pkg/rop/path"
)

const DefaultMessage = "error"

// Gate passes a subject through unchanged or fails with a rejection.
type Gate func(ctx context.Context, subject any) rop.Result[any]

// If fails a mismatching subject with a *MismatchError carrying message
// (DefaultMessage when empty) and the subject.
func If(test any, message string) Gate {
	if message == "" {
		message = DefaultMessage
	}
	return gate(test, func(subject any) error {
		return &MismatchError{Message: message, Value: subject}
	})
}

// IfRaw fails a mismatching subject with the subject itself. An error
// subject is the failure as is; anything else is wrapped in *RejectedError.
func IfRaw(test any) Gate {
	return gate(test, func(subject any) error {
		if rop.IsError(subject) {
			return subject.(error)
		}
		return &RejectedError{Value: subject}
	})
}

// IfOrErrorProperty fails a mismatching subject with its truthy "error"
// property when it has one, otherwise with the subject.
func IfOrErrorProperty(test any) Gate {
	return gate(test, func(subject any) error {
		if rop.IsError(subject) {
			return subject.(error)
		}
		if reason, ok := path.Child(subject, "error"); ok && path.Truthy(reason) {
			if err, isErr := reason.(error); isErr {
				return err
			}
			return &RejectedError{Value: reason}
		}
		return &RejectedError{Value: subject}
	})
}

func gate(test any, reject func(subject any) error) Gate {
	matches := compare.Matcher(test)
	return func(_ context.Context, subject any) rop.Result[any] {
		if matches(subject) {
			return rop.Success(subject)
		}
		return rop.Fail[any](reject(subject))
	}
}

// Lift turns a gate into an asynchronous pipeline stage.
func Lift(g Gate) func(ctx context.Context, input rop.Result[any]) <-chan rop.Result[any] {
	return lite.Switch(func(ctx context.Context, subject any) rop.Result[any] {
		return g(ctx, subject)
	})
}
