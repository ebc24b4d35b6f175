package api

import (
	"context"

	"github.com/ib-77/ropmatch/pkg/rop"
	"github.com/ib-77/ropmatch/pkg/rop/solo"
)

// ProcessChain runs work on the initial data and routes its outcome: exactly
// one of onSuccess or onFailure, then onDone. The returned function blocks
// until all three have run. Nil callbacks are skipped.
//
// onDone is deferred, so it also runs when onSuccess or onFailure panics;
// the panic then continues to the caller. A panicking onSuccess does not
// trigger onFailure.
func ProcessChain(work Work, onSuccess func(any), onFailure func(error), onDone func()) func(ctx context.Context, initial any) {
	return func(ctx context.Context, initial any) {
		if onDone != nil {
			defer onDone()
		}

		outcome := settle(ctx, work(ctx, Resolved(initial)))
		route(ctx, outcome, onSuccess, onFailure)
	}
}

func route(ctx context.Context, outcome rop.Result[any], onSuccess func(any), onFailure func(error)) {
	solo.Finally(ctx, outcome,
		func(_ context.Context, v any) struct{} {
			if onSuccess != nil {
				onSuccess(v)
			}
			return struct{}{}
		},
		func(_ context.Context, err error) struct{} {
			if onFailure != nil {
				onFailure(err)
			}
			return struct{}{}
		},
		nil)
}

// Run executes work once and returns the outcome as a Result.
func Run(ctx context.Context, work Work, initial any) rop.Result[any] {
	return settle(ctx, work(ctx, Resolved(initial)))
}
