package rop

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResultStates(t *testing.T) {
	t.Parallel()

	ok := Success(7)
	assert.True(t, ok.IsSuccess())
	assert.True(t, ok.HasResult())
	assert.False(t, ok.IsFailure())
	assert.Equal(t, 7, ok.Result())
	assert.NotEqual(t, uuid.Nil, ok.Id())
	assert.False(t, ok.CreatedAt().IsZero())

	failed := Fail[int](errors.New("boom"))
	assert.False(t, failed.IsSuccess())
	assert.True(t, failed.IsFailure())
	assert.False(t, failed.IsCancel())
	assert.EqualError(t, failed.Err(), "boom")

	cancelled := Cancel[int](context.Canceled)
	assert.True(t, cancelled.IsFailure())
	assert.True(t, cancelled.IsCancel())

	var empty Result[int]
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsFailure())
	assert.False(t, ok.IsEmpty())
}

func TestFailFromKeepsIdentity(t *testing.T) {
	t.Parallel()

	in := Cancel[int](context.DeadlineExceeded)
	out := FailFrom[int, string](in)

	assert.Equal(t, in.Id(), out.Id())
	assert.Equal(t, in.CreatedAt(), out.CreatedAt())
	assert.True(t, out.IsCancel())
	assert.ErrorIs(t, out.Err(), context.DeadlineExceeded)
}

func TestIsNilAndIsError(t *testing.T) {
	t.Parallel()

	var nilMap map[string]any
	var nilPtr *int
	var nilErr *customErr

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(nilMap))
	assert.True(t, IsNil(nilPtr))
	assert.False(t, IsNil(0))
	assert.False(t, IsNil(map[string]any{}))

	assert.True(t, IsError(errors.New("x")))
	assert.False(t, IsError(error(nilErr)))
	assert.False(t, IsError("x"))
	assert.False(t, IsError(nil))
}

type customErr struct{}

func (*customErr) Error() string { return "custom" }

func TestGetErrors(t *testing.T) {
	t.Parallel()

	a, b := errors.New("a"), errors.New("b")
	assert.Equal(t, []error{a, b}, GetErrors(errors.Join(a, b)))
	assert.Equal(t, []error{a}, GetErrors(a))
	assert.Empty(t, GetErrors(nil))
}

func TestIsCancellationError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCancellationError(context.Canceled))
	assert.True(t, IsCancellationError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.False(t, IsCancellationError(errors.New("other")))
}
