package batch

import (
	"errors"
	"fmt"
)

// Batch size limits.
const (
	MinBatchSize = 1
	MaxBatchSize = 1000
)

// ErrInvalidBatchSize is returned for sizes outside [MinBatchSize, MaxBatchSize].
var ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")

// ValidateBatchSize checks size against the allowed range.
func ValidateBatchSize(size int) error {
	if size < MinBatchSize || size > MaxBatchSize {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}
	return nil
}

// Queue is a FIFO buffer. The zero value is ready to use.
// It is not safe for concurrent use.
type Queue[T any] struct {
	items []T
}

// Len returns the number of buffered items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Push appends items to the back of the queue.
func (q *Queue[T]) Push(items ...T) {
	q.items = append(q.items, items...)
}

// Take removes and returns up to n items from the front of the queue.
// The returned slice does not alias the queue's storage.
func (q *Queue[T]) Take(n int) []T {
	if n > len(q.items) {
		n = len(q.items)
	}
	if n <= 0 {
		return []T{}
	}

	out := make([]T, n)
	copy(out, q.items[:n])

	// Shift the remainder down so the backing array does not grow without bound.
	rest := copy(q.items, q.items[n:])
	var zero T
	for i := rest; i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = q.items[:rest]

	return out
}
