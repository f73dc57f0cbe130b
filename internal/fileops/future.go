package fileops

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Future is the pending result of an asynchronous operation.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done is closed once the operation has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the operation settles or ctx is done. Giving up on ctx
// does not stop the operation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait is Await without the value.
func (f *Future[T]) Wait(ctx context.Context) error {
	_, err := f.Await(ctx)
	return err
}

// Awaiter is anything that can be waited on.
type Awaiter interface {
	Wait(ctx context.Context) error
}

// AwaitAll waits for every future to settle and returns the first failure.
// A failure does not cut the wait short; only ctx does.
func AwaitAll(ctx context.Context, futures ...Awaiter) error {
	var g errgroup.Group
	for _, f := range futures {
		g.Go(func() error {
			return f.Wait(ctx)
		})
	}
	return g.Wait()
}
