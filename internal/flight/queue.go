package flight

import (
	"context"
)

// DefaultQueueCapacity bounds the work queue when no capacity is configured.
const DefaultQueueCapacity = 1000

// Queue is a bounded FIFO of user ids awaiting fetch. Enqueue blocks while
// the queue is full, which is how fetch backpressure reaches claim-winning
// callers.
type Queue struct {
	ch chan int64
}

// NewQueue creates a queue with the given capacity. Non-positive capacities
// fall back to the default.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{ch: make(chan int64, capacity)}
}

// Enqueue appends id, blocking while the queue is full. It returns the
// context error if ctx is done first.
func (q *Queue) Enqueue(ctx context.Context, id int64) error {
	select {
	case q.ch <- id:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue removes the oldest id, blocking while the queue is empty. It
// returns the context error if ctx is done first.
func (q *Queue) Dequeue(ctx context.Context) (int64, error) {
	select {
	case id := <-q.ch:
		return id, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Len returns the number of queued ids.
func (q *Queue) Len() int { return len(q.ch) }

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return cap(q.ch) }
