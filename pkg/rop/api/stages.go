package api

import (
	"context"
	"errors"
	"reflect"

	"github.com/ib-77/ropmatch/pkg/rop"
	"github.com/ib-77/ropmatch/pkg/rop/check"
	"github.com/ib-77/ropmatch/pkg/rop/lite"
	"github.com/ib-77/ropmatch/pkg/rop/path"
)

// ErrNoResult is the cancel reason for a stage that ended without a result
// while ctx was still live.
var ErrNoResult = errors.New("stage produced no result")

// Stage is one asynchronous step: it receives the previous result and
// delivers exactly one result, or closes its channel when ctx is done.
type Stage func(ctx context.Context, input rop.Result[any]) <-chan rop.Result[any]

// Work turns a pending value into a pending outcome.
type Work func(ctx context.Context, pending <-chan rop.Result[any]) <-chan rop.Result[any]

// APICall issues a request. args is the initial data handed to the
// pipeline.
type APICall func(ctx context.Context, args any) (Response, error)

// Resolved is a pending value that is already available.
func Resolved(v any) <-chan rop.Result[any] {
	ch := make(chan rop.Result[any], 1)
	ch <- rop.Success(v)
	close(ch)
	return ch
}

// Sequence chains stages left to right. Stage n+1 starts only after stage n
// settled successfully; the first failure skips every remaining stage and
// becomes the outcome.
func Sequence(stages ...Stage) Work {
	return func(ctx context.Context, pending <-chan rop.Result[any]) <-chan rop.Result[any] {
		out := make(chan rop.Result[any], 1)

		go func() {
			defer close(out)

			current := settle(ctx, pending)
			for _, stage := range stages {
				if !current.IsSuccess() {
					break
				}
				current = settle(ctx, stage(ctx, current))
			}
			out <- current
		}()

		return out
	}
}

// settle waits for a pending result. A channel closed without one means
// the producer gave up, which is reported as a cancel.
func settle(ctx context.Context, pending <-chan rop.Result[any]) rop.Result[any] {
	if res, ok := <-pending; ok {
		return res
	}
	if err := ctx.Err(); err != nil {
		return rop.Cancel[any](err)
	}
	return rop.Cancel[any](ErrNoResult)
}

// typed adapts a function over In to a stage over any, failing with a
// *TypeError when the incoming value has another type.
func typed[In any](name string, fn func(ctx context.Context, in In) (any, error)) Stage {
	return lite.Try(func(ctx context.Context, v any) (any, error) {
		in, ok := v.(In)
		if !ok {
			return nil, &TypeError{Stage: name, Want: reflect.TypeOf((*In)(nil)).Elem().String(), Got: v}
		}
		return fn(ctx, in)
	})
}

// Call issues apiCall with the incoming value as its argument.
func Call(apiCall APICall) Stage {
	return lite.Try(func(ctx context.Context, args any) (any, error) {
		resp, err := apiCall(ctx, args)
		if err != nil {
			return nil, err
		}
		if rop.IsNil(resp) {
			return nil, &TypeError{Stage: "call", Want: "api.Response", Got: resp}
		}
		return resp, nil
	})
}

// AssertHTTPOk passes an ok response through and fails any other with a
// *StatusError.
func AssertHTTPOk() Stage {
	return typed("assert http ok", func(_ context.Context, resp Response) (any, error) {
		if resp.OK() {
			return resp, nil
		}
		return nil, &StatusError{Status: resp.Status(), StatusText: resp.StatusText()}
	})
}

// ParseBody resolves with the decoded body. Decoding errors pass through
// unchanged.
func ParseBody() Stage {
	return typed("parse body", func(ctx context.Context, resp Response) (any, error) {
		return resp.JSON(ctx)
	})
}

// Validate runs a check gate as a stage.
func Validate(gate check.Gate) Stage {
	return check.Lift(gate)
}

// ExtractField resolves with the value at accessor, nil when it is missing.
func ExtractField(accessor string) Stage {
	return lite.Map(func(_ context.Context, v any) any {
		return path.Value(v, accessor)
	})
}
