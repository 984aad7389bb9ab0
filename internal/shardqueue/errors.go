package shardqueue

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueFull is transient back-pressure; callers may try again later.
	ErrQueueFull = errors.New("background queue full")
	// ErrExecutorClosed means Stop was called.
	ErrExecutorClosed = errors.New("background executor closed")
	// ErrJobPanic wraps a recovered panic.
	ErrJobPanic = errors.New("job panicked")
)

// QueueFullError matches ErrQueueFull under errors.Is.
type QueueFullError struct {
	Key      string
	Length   int
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("background queue for %q full (%d/%d)", e.Key, e.Length, e.Capacity)
}

func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
