// worker/pool.go
package worker

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("worker pool is closed")

// Job receives the context it was submitted with.
type Job[T any] func(ctx context.Context) T

type Result[T any] struct {
	JobID  string
	Output T
}

type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

type jobWrapper[T any] struct {
	id  string
	ctx context.Context
	fn  Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
		done:    make(chan struct{}),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case job := <-p.jobs:
			output := job.fn(job.ctx)
			select {
			case p.results <- Result[T]{JobID: job.id, Output: output}:
			case <-p.done:
				return
			}
		}
	}
}

// Submit queues fn, blocking while the queue is full. It fails once the
// pool is closed or ctx is done.
func (p *Pool[T]) Submit(ctx context.Context, id string, fn Job[T]) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	select {
	case p.jobs <- jobWrapper[T]{id: id, ctx: ctx, fn: fn}:
		return nil
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results is closed after Close once every worker has exited.
func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops the workers. Queued jobs that have not started are dropped.
func (p *Pool[T]) Close() {
	p.once.Do(func() { close(p.done) })
}
