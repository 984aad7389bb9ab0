package querycache

import "time"

// Policy makes the cache's freshness and retention rules explicit.
type Policy struct {
	// StaleTime is how long a successful result is served without a refetch.
	// Zero means fresh until invalidated.
	StaleTime time.Duration
	// GCTime is how long an entry is retained after its last use.
	GCTime time.Duration
	// MaxEntries bounds the number of retained entries.
	MaxEntries int
	// RefetchInterval polls observed keys. Zero disables polling.
	RefetchInterval time.Duration
	// RefetchOnInvalidate refetches observed keys in the background as soon
	// as they are invalidated.
	RefetchOnInvalidate bool
}

// DefaultPolicy returns the policy used when none is given.
func DefaultPolicy() Policy {
	return Policy{
		GCTime:              5 * time.Minute,
		MaxEntries:          512,
		RefetchOnInvalidate: true,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.GCTime <= 0 {
		p.GCTime = d.GCTime
	}
	if p.MaxEntries <= 0 {
		p.MaxEntries = d.MaxEntries
	}
	return p
}
