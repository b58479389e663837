package jobs

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// DefaultPoolSize is used when a pool is created with a non-positive size
const DefaultPoolSize = 8

// Task is one unit of work submitted to a Pool
type Task[T any] func(ctx context.Context) (T, error)

// Result is the outcome of one task: either Value or the cause of its failure
type Result[T any] struct {
	Value T
	Err   error
}

// Pool bounds how many tasks run at the same time
type Pool struct {
	size int
}

// NewPool creates a Pool running at most size tasks concurrently
func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &Pool{size: size}
}

// Size returns the concurrency ceiling
func (p *Pool) Size() int {
	return p.size
}

// RunAll executes every task with at most p.Size() in flight and waits for all of them.
// It returns one Result per task, in submission order. Submission blocks while the pool
// is full, so every task is attempted unless an earlier one fails: the first failure
// cancels the context shared by the remaining tasks, and tasks that had not started yet
// record that cancellation as their result instead of running.
func RunAll[T any](ctx context.Context, p *Pool, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result[T]{Err: err}
				return nil
			}
			v, err := task(gctx)
			results[i] = Result[T]{Value: v, Err: err}
			return err
		})
	}

	// Failures are read from results, every slot is filled once Wait returns.
	_ = g.Wait()

	return results
}

// Err aggregates the failures of a completed run. Cancellations that only echo another
// task's failure are dropped. When every failure is a cancellation (the caller gave up)
// a task's own error wrapping the cancellation is preferred over the bare context error
// recorded by tasks that never started.
func Err[T any](results []Result[T]) error {
	var causes []error
	var cancelled, bare error

	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if isBareContextErr(r.Err) {
			if bare == nil {
				bare = r.Err
			}
			continue
		}
		if errors.Is(r.Err, context.Canceled) {
			if cancelled == nil {
				cancelled = r.Err
			}
			continue
		}
		causes = append(causes, r.Err)
	}

	switch {
	case len(causes) > 0:
		return errors.Join(causes...)
	case cancelled != nil:
		return cancelled
	default:
		return bare
	}
}

func isBareContextErr(err error) bool {
	return err == context.Canceled || err == context.DeadlineExceeded
}
