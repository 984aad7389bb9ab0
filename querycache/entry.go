package querycache

import (
	"context"
	"time"
)

// Status is the lifecycle state of an entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a copy of one cached query. Data survives a failed refetch; Err
// holds the latest failure.
type Entry struct {
	Key       Key
	Data      any
	Err       error
	Status    Status
	FetchedAt time.Time
	Stale     bool
	Fetching  bool
}

// Fetcher loads the data for one key. It is called without the caller's
// cancellation.
type Fetcher func(ctx context.Context) (any, error)
