package fileops

import (
	"context"
)

// Async exposes the same operations as Ops, each returning a Future. The
// steps inside one call run sequentially; separate calls may run in
// parallel up to the scheduler's limit.
type Async struct {
	ops   *Ops
	sched *Scheduler
}

// NewAsync creates the asynchronous surface over ops.
func NewAsync(ops *Ops, sched *Scheduler) *Async {
	return &Async{ops: ops, sched: sched}
}

// Read is the asynchronous form of Ops.Read.
func (a *Async) Read(ctx context.Context, path string, opts ReadOptions) *Future[any] {
	return submit(ctx, a.sched, "read", path, func(ctx context.Context) (any, error) {
		return a.ops.Read(ctx, path, opts)
	})
}

// Write is the asynchronous form of Ops.Write.
func (a *Async) Write(ctx context.Context, path string, data any, opts WriteOptions) *Future[struct{}] {
	return submit(ctx, a.sched, "write", path, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.ops.Write(ctx, path, data, opts)
	})
}

// Append is the asynchronous form of Ops.Append. When the parent directory
// is missing it creates it and retries the whole append once, instead of
// falling back to a plain write.
func (a *Async) Append(ctx context.Context, path string, data any, opts AppendOptions) *Future[struct{}] {
	return submit(ctx, a.sched, "append", path, func(ctx context.Context) (struct{}, error) {
		payload, err := prepareAppend(path, data, opts)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, a.ops.appendWith(ctx, path, payload, opts, a.ops.recoverByRetry)
	})
}
