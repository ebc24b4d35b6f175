package core

import "context"

// OptionKey keys pipeline options stored in a context.
type OptionKey string

const (
	WorkerOptionKey OptionKey = "worker_options"
)

// MaxLimitOption is an upper bound; values <= 0 mean unset.
type MaxLimitOption struct {
	Value int
}

// WorkerOptions sets how many lines a runner starts.
type WorkerOptions struct {
	MaxCount MaxLimitOption
}

// WithWorkerOptions stores the worker count in ctx.
func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

// GetWorkerMaxCount returns the worker count stored in ctx, or
// defaultMaxWorkers when none is set or the stored value is not positive.
func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}
