package mass

import (
	"context"

	"github.com/ib-77/ropmatch/pkg/rop"
	"github.com/ib-77/ropmatch/pkg/rop/solo"
)

// lifting runs step in its own goroutine and delivers the single result on
// the returned channel. When ctx is done first the channel is closed without
// a value and onCancel, if any, sees the input that was never processed.
func lifting[In, Out any](ctx context.Context, input rop.Result[In],
	step func() rop.Result[Out],
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	ch := make(chan rop.Result[Out], 1)
	out := make(chan rop.Result[Out])

	go func() {
		defer close(ch)

		if ctx.Err() == nil {
			ch <- step()
		}
	}()

	go func() {
		defer close(out)

		select {
		case pr, ok := <-ch:
			if ok {
				select {
				case out <- pr:
					return
				case <-ctx.Done():
				}
			}
		case <-ctx.Done():
		}

		if onCancel != nil {
			onCancel(ctx, input)
		}
	}()

	return out
}

func Switching[In, Out any](ctx context.Context, input rop.Result[In],
	switchOnSuccess func(ctx context.Context, r In) rop.Result[Out],
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	return lifting(ctx, input, func() rop.Result[Out] {
		return solo.Switch(ctx, input, switchOnSuccess)
	}, onCancel)
}

func Mapping[In, Out any](ctx context.Context, input rop.Result[In],
	mapOnSuccess func(ctx context.Context, r In) Out,
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	return lifting(ctx, input, func() rop.Result[Out] {
		return solo.Map(ctx, input, mapOnSuccess)
	}, onCancel)
}

func Trying[In, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error),
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	return lifting(ctx, input, func() rop.Result[Out] {
		return solo.Try(ctx, input, onTryExecute)
	}, onCancel)
}

type FinallyHandlers[In, Out any] struct {
	OnSuccess func(ctx context.Context, r In) Out
	OnError   func(ctx context.Context, err error) Out
	OnCancel  func(ctx context.Context, err error) Out
}

// Finalizing reduces every result read from inputCh with handlers. It stops
// when inputCh is closed or ctx is done; results still queued after
// cancellation are dropped.
func Finalizing[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	handlers FinallyHandlers[In, Out],
	onSuccessResult func(ctx context.Context, out Out)) <-chan Out {

	out := make(chan Out)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case in, ok := <-inputCh:
				if !ok {
					return
				}

				res := solo.Finally(ctx, in, handlers.OnSuccess, handlers.OnError, handlers.OnCancel)

				select {
				case <-ctx.Done():
					return
				case out <- res:
					if onSuccessResult != nil {
						onSuccessResult(ctx, res)
					}
				}
			}
		}
	}()

	return out
}
