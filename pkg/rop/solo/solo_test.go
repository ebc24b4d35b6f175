package solo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ib-77/ropmatch/pkg/rop"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	positive := func(_ context.Context, n int) (bool, string) {
		return n > 0, "value must be positive"
	}

	assert.True(t, Validate(ctx, 3, positive).IsSuccess())

	res := Validate(ctx, -1, positive)
	assert.EqualError(t, res.Err(), "value must be positive")

	failed := Fail[int](errors.New("earlier"))
	assert.Equal(t, failed, AndValidate(ctx, failed, positive))
}

func TestSwitchAndMap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	res := Switch(ctx, Succeed(2), func(_ context.Context, n int) rop.Result[string] {
		return rop.Success("two")
	})
	assert.Equal(t, "two", res.Result())

	cancelled := Cancel[int](context.Canceled)
	mapped := Map(ctx, cancelled, func(_ context.Context, n int) string {
		t.Fatal("map must not run on a cancelled input")
		return ""
	})
	assert.True(t, mapped.IsCancel())
	assert.Equal(t, cancelled.Id(), mapped.Id())
}

func TestTee(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seen := 0
	Tee(ctx, Succeed(1), func(_ context.Context, r rop.Result[int]) { seen += r.Result() })
	Tee(ctx, Fail[int](errors.New("x")), func(_ context.Context, r rop.Result[int]) { seen += 100 })
	assert.Equal(t, 1, seen)
}

func TestTry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	assert.True(t, Try(ctx, Succeed(1), func(_ context.Context, n int) (int, error) {
		return n, nil
	}).IsSuccess())

	failed := Try(ctx, Succeed(1), func(_ context.Context, _ int) (int, error) {
		return 0, errors.New("nope")
	})
	assert.True(t, failed.IsFailure())
	assert.False(t, failed.IsCancel())

	cancelled := Try(ctx, Succeed(1), func(_ context.Context, _ int) (int, error) {
		return 0, context.DeadlineExceeded
	})
	assert.True(t, cancelled.IsCancel())
}

func TestFinally(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	onSuccess := func(_ context.Context, n int) string { return "ok" }
	onError := func(_ context.Context, err error) string { return "error" }
	onCancel := func(_ context.Context, err error) string { return "cancel" }

	assert.Equal(t, "ok", Finally(ctx, Succeed(1), onSuccess, onError, onCancel))
	assert.Equal(t, "error", Finally(ctx, Fail[int](errors.New("x")), onSuccess, onError, onCancel))
	assert.Equal(t, "cancel", Finally(ctx, Cancel[int](context.Canceled), onSuccess, onError, onCancel))
	assert.Equal(t, "error", Finally(ctx, Cancel[int](context.Canceled), onSuccess, onError, nil))
}
