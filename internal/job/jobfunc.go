// Package job adapts plain closures to the shard executor's Job interface.
package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilJobFunc is returned when a job is built from a nil closure.
var ErrNilJobFunc = errors.New("nil JobFunc")

// namedJob is a closure tagged with a short name; failures carry the name so
// the executor's error handler can tell background jobs apart.
type namedJob struct {
	name string
	fn   func(context.Context) error
}

func (j namedJob) Run(ctx context.Context) error {
	if j.fn == nil {
		return fmt.Errorf("%s: %w", j.name, ErrNilJobFunc)
	}
	if err := j.fn(ctx); err != nil {
		return fmt.Errorf("%s: %w", j.name, err)
	}
	return nil
}

// String returns the job name.
func (j namedJob) String() string { return j.name }

// New creates a job from a closure.
func New(name string, fn func(context.Context) error) namedJob {
	return namedJob{name: name, fn: fn}
}
