package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/ropmatch/pkg/rop"
)

func run(t *testing.T, stage Stage, input rop.Result[any]) rop.Result[any] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	select {
	case res, ok := <-stage(ctx, input):
		require.True(t, ok, "stage closed without a result")
		return res
	case <-ctx.Done():
		t.Fatalf("stage did not settle")
	}
	panic("unreachable")
}

func TestAssertHTTPOk(t *testing.T) {
	t.Parallel()

	ok := OKReply(nil)
	res := run(t, AssertHTTPOk(), rop.Success[any](ok))
	require.True(t, res.IsSuccess())
	assert.Same(t, ok, res.Result())

	res = run(t, AssertHTTPOk(), rop.Success[any](&Reply{Code: 503}))
	var statusErr *StatusError
	require.ErrorAs(t, res.Err(), &statusErr)
	assert.Equal(t, 503, statusErr.Status)
	assert.Equal(t, "Service Unavailable", statusErr.StatusText)

	res = run(t, AssertHTTPOk(), rop.Success[any]("not a response"))
	var typeErr *TypeError
	require.ErrorAs(t, res.Err(), &typeErr)
	assert.Equal(t, "api.Response", typeErr.Want)
	assert.Contains(t, typeErr.Error(), "got string")
}

func TestParseBody(t *testing.T) {
	t.Parallel()

	res := run(t, ParseBody(), rop.Success[any](&Reply{Code: 200, ContentType: "application/json", Body: []byte(`{"a":[1]}`)}))
	require.True(t, res.IsSuccess())
	assert.Equal(t, map[string]any{"a": []any{float64(1)}}, res.Result())

	res = run(t, ParseBody(), rop.Success[any](&Reply{Code: 200, Body: []byte(`{`)}))
	assert.False(t, res.IsSuccess())
}

func TestExtractField(t *testing.T) {
	t.Parallel()

	res := run(t, ExtractField("data.id"), rop.Success[any](map[string]any{"data": map[string]any{"id": 5}}))
	assert.Equal(t, 5, res.Result())

	res = run(t, ExtractField("data"), rop.Success[any]("scalar"))
	require.True(t, res.IsSuccess())
	assert.Nil(t, res.Result())
}

func TestCallRejectsNilResponse(t *testing.T) {
	t.Parallel()

	res := run(t, Call(func(context.Context, any) (Response, error) { return (*Reply)(nil), nil }), rop.Success[any](nil))
	var typeErr *TypeError
	assert.ErrorAs(t, res.Err(), &typeErr)
}

func TestSequenceOrder(t *testing.T) {
	t.Parallel()

	var order []string
	step := func(name string) Stage {
		return func(ctx context.Context, in rop.Result[any]) <-chan rop.Result[any] {
			out := make(chan rop.Result[any], 1)
			go func() {
				defer close(out)
				time.Sleep(time.Millisecond)
				order = append(order, name)
				out <- rop.Success[any](in.Result().(int) + 1)
			}()
			return out
		}
	}

	res := Run(context.Background(), Sequence(step("a"), step("b"), step("c")), 0)
	require.True(t, res.IsSuccess())
	assert.Equal(t, 3, res.Result())
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSequenceEmptyAndFailedInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	res := Run(ctx, Sequence(), "same")
	assert.Equal(t, "same", res.Result())

	boom := errors.New("boom")
	pending := make(chan rop.Result[any], 1)
	pending <- rop.Fail[any](boom)
	close(pending)

	out := <-Sequence(ExtractField("x"))(ctx, pending)
	assert.Same(t, boom, out.Err())
}

func TestSequenceStageWithoutResult(t *testing.T) {
	t.Parallel()

	silent := func(ctx context.Context, in rop.Result[any]) <-chan rop.Result[any] {
		out := make(chan rop.Result[any])
		close(out)
		return out
	}

	res := Run(context.Background(), Sequence(silent), nil)
	assert.True(t, res.IsCancel())
	assert.ErrorIs(t, res.Err(), ErrNoResult)
}
