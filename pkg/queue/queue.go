package queue

import (
	"context"
	"sync"

	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
)

var ErrClosed = errs.ErrQueueClosed

const _defaultCapacity = 64

// Queue is an unbounded FIFO safe for many producers and one consumer.
//
// The order in which Enqueue calls acquire the lock is the order in which
// Dequeue hands the items out.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	signal chan struct{} // buffered, size 1; closed on Close
}

func New[T any]() *Queue[T] {
	return &Queue[T]{
		items:  make([]T, 0, _defaultCapacity),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends v to the back of the queue. Never blocks.
func (q *Queue[T]) Enqueue(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	q.items = append(q.items, v)

	// multiple pending signals coalesce into one
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return nil
}

// TryDequeue removes the front item without blocking.
func (q *Queue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T

	if len(q.items) == 0 {
		return zero, false
	}

	v := q.items[0]
	q.items[0] = zero // release references held by the backing array

	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}

	return v, true
}

// Dequeue blocks until an item is available, the queue is closed and
// drained, or ctx is done.
func (q *Queue[T]) Dequeue(ctx context.Context) (T, error) {
	var zero T

	for {
		if v, ok := q.TryDequeue(); ok {
			return v, nil
		}

		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return zero, ErrClosed
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-q.signal:
		}
	}
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Close rejects further enqueues and wakes a blocked consumer. Items already
// queued can still be dequeued. Returns the number of items left in the queue.
func (q *Queue[T]) Close() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.signal)
	}

	return len(q.items)
}
