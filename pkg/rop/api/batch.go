package api

import (
	"context"

	"github.com/ib-77/ropmatch/pkg/rop/config"
	"github.com/ib-77/ropmatch/pkg/rop/core"
	"github.com/ib-77/ropmatch/pkg/rop/lite"
	"github.com/ib-77/ropmatch/pkg/rop/mass"
)

// Outcome is the settled result of one batch input.
type Outcome struct {
	Index int
	Input any
	Value any
	Err   error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

type job struct {
	index int
	input any
}

// Batch runs work once per input on lines concurrent workers and returns
// the outcomes in input order. lines <= 0 takes the worker count from ctx
// (core.WithWorkerOptions) or config.DefaultLines. Inputs that never ran
// because ctx was cancelled carry ctx.Err().
func Batch(ctx context.Context, work Work, inputs []any, lines int) []Outcome {
	if lines <= 0 {
		lines = core.GetWorkerMaxCount(ctx, config.DefaultLines)
	}

	jobs := make([]job, len(inputs))
	for i, input := range inputs {
		jobs[i] = job{index: i, input: input}
	}

	engine := lite.Map(func(ctx context.Context, j job) Outcome {
		o := Outcome{Index: j.index, Input: j.input}
		res := Run(ctx, work, j.input)
		if res.IsSuccess() {
			o.Value = res.Result()
		} else {
			o.Err = res.Err()
		}
		return o
	})

	finished := core.FromChanMany(ctx,
		lite.Finally(ctx,
			lite.Turnout(ctx, core.ToChanManyResults(ctx, jobs), engine, lines),
			mass.FinallyHandlers[Outcome, *Outcome]{
				OnSuccess: func(_ context.Context, o Outcome) *Outcome { return &o },
				OnError:   func(_ context.Context, _ error) *Outcome { return nil },
			}))

	outcomes := make([]Outcome, len(inputs))
	settled := make([]bool, len(inputs))
	for _, o := range finished {
		if o != nil {
			outcomes[o.Index] = *o
			settled[o.Index] = true
		}
	}

	for i := range outcomes {
		if !settled[i] {
			reason := ctx.Err()
			if reason == nil {
				reason = ErrNoResult
			}
			outcomes[i] = Outcome{Index: i, Input: inputs[i], Err: reason}
		}
	}
	return outcomes
}

