// Package channel provides the message queues that carry values between
// interpreter instances.
package channel

import (
	"iter"
)

const (
	QUEUE_MIN_ALLOC = 16 // Initial backing store size.
)

// Queue is a FIFO of values, stored in a circular buffer that grows on
// demand. A zero Capacity means unbounded.
type Queue struct {
	Capacity int // Maximum number of queued values, or 0 for unbounded.

	ReadIndex int
	Size      int
	Data      []int64
}

// Reset empties the queue, keeping its backing store.
func (q *Queue) Reset() {
	q.ReadIndex = 0
	q.Size = 0
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	return q.Size
}

// Empty returns true if there is nothing to receive.
func (q *Queue) Empty() bool {
	return q.Size == 0
}

// Full returns true if the queue has reached its capacity.
func (q *Queue) Full() bool {
	return q.Capacity > 0 && q.Size >= q.Capacity
}

// grow doubles the backing store, unwrapping the ring into the new slice.
func (q *Queue) grow() {
	size := max(QUEUE_MIN_ALLOC, len(q.Data)*2)
	data := make([]int64, size)
	for n := range q.Size {
		data[n] = q.Data[(q.ReadIndex+n)%len(q.Data)]
	}
	q.Data = data
	q.ReadIndex = 0
}

// Send appends a value to the tail of the queue.
// Returns ErrChannelFull if the queue has reached capacity.
func (q *Queue) Send(value int64) (err error) {
	if q.Full() {
		err = ErrChannelFull
		return
	}

	if q.Size == len(q.Data) {
		q.grow()
	}

	q.Data[(q.ReadIndex+q.Size)%len(q.Data)] = value
	q.Size++

	return
}

// Pop removes the value at the head of the queue.
func (q *Queue) Pop() (value int64, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.ReadIndex++
		if q.ReadIndex == len(q.Data) {
			q.ReadIndex = 0
		}
		q.Size--
	}
	return
}

// Peek returns the value at the head of the queue without removing it.
func (q *Queue) Peek() (value int64, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[q.ReadIndex], true
}

// Receive returns an iterator that drains the queue in FIFO order.
// Values not consumed by the caller stay queued.
func (q *Queue) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for {
			value, ok := q.Pop()
			if !ok {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}

// Values returns an iterator over the queued values, head first, without
// consuming them.
func (q *Queue) Values() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for n := range q.Size {
			if !yield(q.Data[(q.ReadIndex+n)%len(q.Data)]) {
				return
			}
		}
	}
}
