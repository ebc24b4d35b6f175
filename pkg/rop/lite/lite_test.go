package lite

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/ropmatch/pkg/rop"
	"github.com/ib-77/ropmatch/pkg/rop/core"
	"github.com/ib-77/ropmatch/pkg/rop/mass"
)

func doubling(ctx context.Context, input rop.Result[int]) <-chan rop.Result[int] {
	output := make(chan rop.Result[int], 1)
	go func() {
		defer close(output)
		if input.IsSuccess() {
			output <- rop.Success(input.Result() * 2)
		} else {
			output <- input
		}
	}()
	return output
}

func TestRun_SingleWorker(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var results []int
	for result := range Run(ctx, core.ToChanManyResults(ctx, []int{1, 2, 3, 4, 5}), doubling, 1) {
		require.True(t, result.IsSuccess(), "unexpected error: %v", result.Err())
		results = append(results, result.Result())
	}

	// one line keeps input order
	assert.Equal(t, []int{2, 4, 6, 8, 10}, results)
}

func TestRun_MultipleWorkers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	input := make([]int, 100)
	for i := range input {
		input[i] = i + 1
	}

	var active, peak atomic.Int32
	processor := func(ctx context.Context, in rop.Result[int]) <-chan rop.Result[int] {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return doubling(ctx, in)
	}

	var results []int
	for result := range Run(ctx, core.ToChanManyResults(ctx, input), processor, 5) {
		if result.IsSuccess() {
			results = append(results, result.Result())
		}
	}

	assert.Len(t, results, len(input))
	assert.LessOrEqual(t, peak.Load(), int32(5))
	assert.Greater(t, peak.Load(), int32(1))
}

func TestTurnout_NonPositiveLines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	results := core.FromChanMany(ctx, Turnout(ctx, core.ToChanManyResults(ctx, []int{1, 2}), doubling, 0))
	assert.Len(t, results, 2)
}

func TestTurnout_TypeConversion(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	engine := Map(func(_ context.Context, n int) string {
		return fmt.Sprintf("num_%d", n)
	})

	var results []string
	for result := range Turnout(ctx, core.ToChanManyResults(ctx, []int{3, 1, 2}), engine, 2) {
		require.True(t, result.IsSuccess())
		results = append(results, result.Result())
	}

	sort.Strings(results)
	assert.Equal(t, []string{"num_1", "num_2", "num_3"}, results)
}

func TestTurnout_EngineWithoutResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	silent := func(_ context.Context, _ rop.Result[int]) <-chan rop.Result[int] {
		ch := make(chan rop.Result[int])
		close(ch)
		return ch
	}

	results := core.FromChanMany(ctx, Turnout(ctx, core.ToChanManyResults(ctx, []int{1}), silent, 1))
	require.Len(t, results, 1)
	assert.True(t, results[0].IsCancel())
	assert.ErrorIs(t, results[0].Err(), core.ErrNoResult)
}

func TestRun_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	input := make([]int, 20)
	for i := range input {
		input[i] = i + 1
	}

	slow := Switch(func(ctx context.Context, n int) rop.Result[int] {
		time.Sleep(50 * time.Millisecond)
		return rop.Success(n)
	})

	go func() {
		time.Sleep(80 * time.Millisecond)
		cancel()
	}()

	var results []int
	for result := range Run(ctx, core.ToChanManyResults(ctx, input), slow, 2) {
		if result.IsSuccess() {
			results = append(results, result.Result())
		}
	}

	assert.Less(t, len(results), len(input))
}

func TestSwitch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	positive := Switch(func(_ context.Context, n int) rop.Result[int] {
		if n <= 0 {
			return rop.Fail[int](errors.New("value must be positive"))
		}
		return rop.Success(n)
	})

	ok := <-positive(ctx, rop.Success(5))
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, 5, ok.Result())

	bad := <-positive(ctx, rop.Success(-5))
	assert.False(t, bad.IsSuccess())
	assert.EqualError(t, bad.Err(), "value must be positive")

	upstream := rop.Fail[int](errors.New("upstream"))
	passed := <-positive(ctx, upstream)
	assert.EqualError(t, passed.Err(), "upstream")
	assert.Equal(t, upstream.Id(), passed.Id())
}

func TestTry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parse := Try(func(_ context.Context, s string) (int, error) {
		return strconv.Atoi(s)
	})

	ok := <-parse(ctx, rop.Success("42"))
	assert.Equal(t, 42, ok.Result())

	bad := <-parse(ctx, rop.Success("x"))
	assert.True(t, bad.IsFailure())
	assert.False(t, bad.IsCancel())

	cancelled := Try(func(_ context.Context, _ string) (int, error) {
		return 0, fmt.Errorf("waiting: %w", context.Canceled)
	})
	res := <-cancelled(ctx, rop.Success(""))
	assert.True(t, res.IsCancel())
}

func TestStageOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := <-Map(func(_ context.Context, n int) int { return n })(ctx, rop.Success(1))
	assert.False(t, ok)
}

func TestFinally(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	handlers := mass.FinallyHandlers[int, string]{
		OnSuccess: func(_ context.Context, n int) string { return "val:" + strconv.Itoa(n) },
		OnError:   func(_ context.Context, err error) string { return "err:" + err.Error() },
		OnCancel:  func(_ context.Context, _ error) string { return "cancel" },
	}

	in := make(chan rop.Result[int], 3)
	in <- rop.Success(1)
	in <- rop.Fail[int](errors.New("bad"))
	in <- rop.Cancel[int](context.Canceled)
	close(in)

	assert.Equal(t, []string{"val:1", "err:bad", "cancel"}, core.FromChanMany(ctx, Finally(ctx, in, handlers)))
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ctx = core.WithWorkerOptions(ctx, 2)

	out := core.FromChanMany(ctx,
		Finally(ctx,
			Turnout(ctx,
				Turnout(ctx,
					core.ToChanManyResults(ctx, []string{"1", "2", "bad", "5"}),
					Try(func(_ context.Context, s string) (int, error) {
						return strconv.Atoi(s)
					}),
					core.GetWorkerMaxCount(ctx, 5)),
				Switch(func(_ context.Context, n int) rop.Result[int] {
					return rop.Success(n + 1000)
				}),
				2),
			mass.FinallyHandlers[int, int]{
				OnSuccess: func(_ context.Context, n int) int { return n },
				OnError:   func(_ context.Context, _ error) int { return -1 },
			}))

	sort.Ints(out)
	assert.Equal(t, []int{-1, 1001, 1002, 1005}, out)
}
