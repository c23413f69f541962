package queue

import (
	"github.com/ef-ds/deque/v2"
)

// Q is a generic stack/queue structure that supports both stack and queue operations.
// Backed by github.com/ef-ds/deque so both ends are O(1) amortized.
type Q[T any] struct {
	d *deque.Deque[T]
}

// New creates a new Q
func New[T any]() *Q[T] {
	return &Q[T]{
		d: deque.New[T](),
	}
}

// Stack Operations

// Push adds an item to the top of the stack (stack behavior)
func (q *Q[T]) Push(item T) {
	q.d.PushBack(item)
}

// Pop removes and returns the top item from the stack (stack behavior)
func (q *Q[T]) Pop() (T, bool) {
	return q.d.PopBack()
}

// Peek returns the top item from the stack without removing it
func (q *Q[T]) Peek() (T, bool) {
	return q.d.Back()
}

// Queue Operations

// Enqueue adds an item to the end of the queue (queue behavior)
func (q *Q[T]) Enqueue(item T) {
	q.d.PushBack(item)
}

// Dequeue removes and returns the first item from the queue (queue behavior)
func (q *Q[T]) Dequeue() (T, bool) {
	return q.d.PopFront()
}

// Head returns the first item of the queue without removing it
func (q *Q[T]) Head() (T, bool) {
	return q.d.Front()
}

// Utility Methods

// Len returns the number of items in the Q
func (q *Q[T]) Len() int {
	return q.d.Len()
}

// Clear removes all items
func (q *Q[T]) Clear() {
	q.d.Init()
}
