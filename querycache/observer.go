package querycache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Observer is a live subscription to one key, the headless counterpart of a
// mounted view. It receives every change to the entry until Close; results
// that arrive after Close are dropped for this observer without aborting the
// network call.
type Observer struct {
	c     *Cache
	key   Key
	fetch Fetcher
	fn    func(Entry)

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Observe subscribes fn to key. The current entry, if any, is delivered
// immediately; when it is missing or not fresh a fetch is scheduled in the
// background. With a RefetchInterval the key is also polled. fn must not
// call Close on its own observer.
func (c *Cache) Observe(key Key, fetch Fetcher, fn func(Entry)) *Observer {
	o := &Observer{c: c, key: key, fetch: fetch, fn: fn, done: make(chan struct{})}
	id := key.id()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		o.closed = true
		close(o.done)
		return o
	}
	set := c.observers[id]
	if set == nil {
		set = make(map[*Observer]struct{})
		c.observers[id] = set
	}
	set[o] = struct{}{}
	var (
		current Entry
		have    bool
		fresh   bool
	)
	if rec, ok := c.entries.Get(id); ok {
		current, have, fresh = rec.entry, true, c.freshLocked(rec)
		c.entries.Add(id, rec)
	}
	c.mu.Unlock()

	if have {
		o.deliver(current)
	}
	if !fresh {
		c.background(key, fetch)
	}
	if c.policy.RefetchInterval > 0 {
		go o.poll(c.policy.RefetchInterval)
	}
	return o
}

// Key returns the observed key.
func (o *Observer) Key() Key { return o.key }

// Close stops delivery and polling. It is safe to call more than once.
func (o *Observer) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.done)
	o.mu.Unlock()

	id := o.key.id()
	o.c.mu.Lock()
	if set := o.c.observers[id]; set != nil {
		delete(set, o)
		if len(set) == 0 {
			delete(o.c.observers, id)
		}
	}
	o.c.mu.Unlock()
}

// deliver holds o.mu while calling fn so nothing is delivered after Close
// returns.
func (o *Observer) deliver(e Entry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.fn(e)
}

// poll refetches on a fixed interval. Failures back off exponentially up to
// ten intervals; a success restores the base interval.
func (o *Observer) poll(interval time.Duration) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.MaxInterval = 10 * interval
	b.MaxElapsedTime = 0
	b.RandomizationFactor = 0
	b.Reset()

	delay := interval
	timer := time.NewTimer(delay)
	defer timer.Stop()
	for {
		select {
		case <-o.done:
			return
		case <-timer.C:
		}
		if _, err := o.c.Refetch(context.Background(), o.key, o.fetch); err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			delay = b.NextBackOff()
		} else {
			b.Reset()
			delay = interval
		}
		timer.Reset(delay)
	}
}

// notify delivers e to every open observer of id.
func (c *Cache) notify(id string, e Entry) {
	c.mu.Lock()
	set := c.observers[id]
	obs := make([]*Observer, 0, len(set))
	for o := range set {
		obs = append(obs, o)
	}
	c.mu.Unlock()
	for _, o := range obs {
		o.deliver(e)
	}
}
