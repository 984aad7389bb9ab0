package querycache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct {
	mu      sync.Mutex
	entries []Entry
}

func (s *sink) add(e Entry) {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
}

func (s *sink) last() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func (s *sink) successes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.Status == StatusSuccess && !e.Fetching && !e.Stale {
			n++
		}
	}
	return n
}

func TestObserveFetchesAndRefetchesOnInvalidate(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{}
	var s sink
	o := c.Observe(NewKey("notifications", "unread"), f.fetch, s.add)
	defer o.Close()

	require.Eventually(t, func() bool { return s.successes() == 1 }, time.Second, time.Millisecond)

	c.Invalidate(NewKey("notifications"))
	require.Eventually(t, func() bool { return s.successes() == 2 }, time.Second, time.Millisecond)
	e, _ := s.last()
	assert.Equal(t, 2, e.Data)
}

func TestObserveDeliversCachedEntry(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{}
	key := NewKey("boards")
	_, err := c.Read(context.Background(), key, f.fetch)
	require.NoError(t, err)

	var s sink
	o := c.Observe(key, f.fetch, s.add)
	defer o.Close()

	e, ok := s.last()
	require.True(t, ok)
	assert.Equal(t, 1, e.Data)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 1, f.calls.Load(), "fresh entry needs no fetch")
}

func TestClosedObserverDropsLateResults(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{release: make(chan struct{})}
	key := NewKey("chat", "conversations")
	var s sink
	o := c.Observe(key, f.fetch, s.add)

	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	o.Close()
	o.Close()
	close(f.release)

	require.Eventually(t, func() bool {
		e, ok := c.Peek(key)
		return ok && e.Status == StatusSuccess
	}, time.Second, time.Millisecond)
	assert.Zero(t, s.successes())
}

func TestNoRefetchOnInvalidateWhenDisabled(t *testing.T) {
	c := newCache(t, Policy{RefetchOnInvalidate: false})
	f := &counter{}
	var s sink
	o := c.Observe(NewKey("contacts"), f.fetch, s.add)
	defer o.Close()
	require.Eventually(t, func() bool { return s.successes() == 1 }, time.Second, time.Millisecond)

	c.Invalidate(NewKey("contacts"))
	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestRefetchIntervalPolls(t *testing.T) {
	c := newCache(t, Policy{RefetchInterval: 10 * time.Millisecond})
	f := &counter{}
	var s sink
	o := c.Observe(NewKey("notifications", "count"), f.fetch, s.add)

	require.Eventually(t, func() bool { return f.calls.Load() >= 3 }, time.Second, time.Millisecond)
	o.Close()
	n := f.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, f.calls.Load(), n+1, "polling stops after Close")
}

func TestPollingBacksOffOnFailure(t *testing.T) {
	c := newCache(t, Policy{RefetchInterval: 5 * time.Millisecond})
	f := &counter{err: errors.New("down")}
	o := c.Observe(NewKey("reports"), f.fetch, func(Entry) {})
	defer o.Close()

	time.Sleep(200 * time.Millisecond)
	// Without backoff this would be ~40 calls.
	assert.Less(t, f.calls.Load(), int32(20))
	assert.Greater(t, f.calls.Load(), int32(1))
}
