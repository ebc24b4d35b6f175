package core

import (
	"context"
	"errors"
	"sync"

	"github.com/ib-77/ropmatch/pkg/rop"
)

// ErrNoResult is the cancel reason for an engine that closed its channel
// without producing a result while ctx was still live.
var ErrNoResult = errors.New("engine produced no result")

// Locomotive is one worker line: it pulls inputs from inputCh, drives each
// through engine and forwards the outcome to outCh until inputCh closes or
// ctx is done. An engine that yields nothing becomes a cancel result so
// every input accepted by the line is accounted for.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out],
	engine func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out],
	onSuccess func(ctx context.Context, in rop.Result[Out]), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			pr, produced := <-engine(ctx, in)
			if !produced {
				reason := ctx.Err()
				if reason == nil {
					reason = ErrNoResult
				}
				pr = rop.Cancel[Out](reason)
			}

			select {
			case <-ctx.Done():
				return
			case outCh <- pr:
				if onSuccess != nil {
					onSuccess(ctx, pr)
				}
			}
		}
	}
}
