// Package querycache is the client-side query cache. Reads are served from
// fresh entries, concurrent reads of one key share a single fetch, and
// mutations invalidate key prefixes only after they succeed.
package querycache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workdesk/workdesk-client/internal/job"
	"github.com/workdesk/workdesk-client/internal/shardqueue"
	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by reads issued after Close.
var ErrClosed = errors.New("querycache: closed")

// executor runs background refetches; jobs for one key run in order and a
// refetch still waiting to start absorbs later ones for the same key.
type executor interface {
	SubmitCoalesced(context.Context, string, shardqueue.Job) (bool, error)
	Stop()
}

type record struct {
	entry Entry
	seq   uint64 // seq of the flight that produced entry
}

// flight is one fetch for one key. invalidated is set when an invalidation
// lands while the fetch is running, so its result is stored stale.
type flight struct {
	seq         uint64
	invalidated bool
	dropped     bool
}

// Cache is safe for concurrent use.
type Cache struct {
	policy   Policy
	logger   zerolog.Logger
	exec     executor
	ownsExec bool
	now      func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	entries   *expirable.LRU[string, *record]
	inflight  map[string]*flight
	observers map[string]map[*Observer]struct{}
	seq       uint64
	closed    bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger for background refetch failures.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithExecutor runs background refetches on e instead of a private executor.
// The cache does not stop e on Close.
func WithExecutor(e *shardqueue.Executor) Option {
	return func(c *Cache) { c.exec = e }
}

func withClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache with the given policy; zero retention fields take
// their defaults.
func New(p Policy, opts ...Option) *Cache {
	c := &Cache{
		policy:    p.withDefaults(),
		logger:    log.Logger,
		now:       time.Now,
		inflight:  make(map[string]*flight),
		observers: make(map[string]map[*Observer]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = expirable.NewLRU[string, *record](c.policy.MaxEntries, nil, c.policy.GCTime)
	if c.exec == nil {
		logger := c.logger
		c.exec = shardqueue.New(shardqueue.Config{
			Workers:   4,
			QueueSize: 256,
			ErrorHandler: func(err error) {
				logger.Warn().Err(err).Msg("background refetch failed")
			},
		})
		c.ownsExec = true
	}
	return c
}

// Policy returns the effective policy.
func (c *Cache) Policy() Policy { return c.policy }

// Close closes every observer and stops the private executor.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	var obs []*Observer
	for _, set := range c.observers {
		for o := range set {
			obs = append(obs, o)
		}
	}
	c.mu.Unlock()

	for _, o := range obs {
		o.Close()
	}
	if c.ownsExec {
		c.exec.Stop()
	}
}

// --------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------

// Read returns the entry for key, calling fetch only when there is no fresh
// entry and no fetch already in flight. A cancelled ctx returns early; the
// fetch itself runs to completion and populates the cache.
func (c *Cache) Read(ctx context.Context, key Key, fetch Fetcher) (Entry, error) {
	id := key.id()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Entry{}, ErrClosed
	}
	if rec, ok := c.entries.Get(id); ok && c.freshLocked(rec) {
		c.entries.Add(id, rec)
		e := rec.entry
		c.mu.Unlock()
		hitsTotal.Inc()
		return e, nil
	}
	if _, ok := c.inflight[id]; ok {
		dedupJoinsTotal.Inc()
	} else {
		missesTotal.Inc()
	}
	c.mu.Unlock()

	return c.await(ctx, key, fetch)
}

// Refetch fetches key even when its entry is fresh. It still joins a fetch
// that is already in flight.
func (c *Cache) Refetch(ctx context.Context, key Key, fetch Fetcher) (Entry, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return Entry{}, ErrClosed
	}
	return c.await(ctx, key, fetch)
}

func (c *Cache) await(ctx context.Context, key Key, fetch Fetcher) (Entry, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.id(), func() (any, error) {
		e := c.run(detached, key, fetch)
		return e, e.Err
	})

	select {
	case res := <-ch:
		e, _ := res.Val.(Entry)
		return e, res.Err
	case <-ctx.Done():
		return Entry{}, ctx.Err()
	}
}

// run executes one flight and stores its result.
func (c *Cache) run(ctx context.Context, key Key, fetch Fetcher) Entry {
	id := key.id()

	c.mu.Lock()
	c.seq++
	f := &flight{seq: c.seq}
	c.inflight[id] = f
	rec, ok := c.entries.Peek(id)
	if !ok {
		rec = &record{entry: Entry{Key: key}}
		c.entries.Add(id, rec)
	}
	if rec.entry.Status != StatusSuccess {
		rec.entry.Status = StatusLoading
	}
	rec.entry.Fetching = true
	loading := rec.entry
	c.mu.Unlock()
	c.notify(id, loading)

	start := time.Now()
	data, err := fetch(ctx)
	fetchDuration.Observe(time.Since(start).Seconds())

	c.mu.Lock()
	if c.inflight[id] == f {
		delete(c.inflight, id)
	}
	if f.dropped {
		// Cleared while in flight: the result belongs to nobody.
		c.mu.Unlock()
		if err != nil {
			return Entry{Key: key, Status: StatusError, Err: err}
		}
		return Entry{Key: key, Status: StatusSuccess, Data: data, FetchedAt: c.now()}
	}
	cur, ok := c.entries.Peek(id)
	if !ok {
		cur = &record{entry: Entry{Key: key}}
	}
	if cur.seq > f.seq {
		// A newer flight already stored its result.
		e := cur.entry
		c.mu.Unlock()
		if err != nil {
			e.Err = err
		}
		return e
	}
	next := cur.entry
	next.Key = key
	next.Fetching = false
	if err != nil {
		next.Status, next.Err = StatusError, err
	} else {
		next.Status, next.Err, next.Data = StatusSuccess, nil, data
		next.FetchedAt = c.now()
	}
	next.Stale = f.invalidated
	c.entries.Add(id, &record{entry: next, seq: f.seq})
	c.mu.Unlock()

	if err != nil {
		c.logger.Debug().Err(err).Str("key", key.String()).Msg("fetch failed")
	}
	c.notify(id, next)
	return next
}

func (c *Cache) freshLocked(rec *record) bool {
	e := rec.entry
	if e.Status != StatusSuccess || e.Stale {
		return false
	}
	if c.policy.StaleTime > 0 && c.now().Sub(e.FetchedAt) >= c.policy.StaleTime {
		return false
	}
	return true
}

// Peek returns the entry for key without fetching or touching retention.
func (c *Cache) Peek(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.entries.Peek(key.id())
	if !ok {
		return Entry{}, false
	}
	return rec.entry, true
}

// Len returns the number of retained entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// --------------------------------------------------------------------
// Invalidation
// --------------------------------------------------------------------

// Invalidate marks every entry under prefix stale and returns how many were
// marked. Data is kept; the next read of an affected key fetches again. A
// fetch in flight for an affected key is detached so the next read starts a
// new one. Observed keys are refetched in the background when the policy
// asks for it.
func (c *Cache) Invalidate(prefix Key) int {
	type target struct {
		key   Key
		fetch Fetcher
	}

	c.mu.Lock()
	n := 0
	var marked []Entry
	for _, id := range c.entries.Keys() {
		rec, ok := c.entries.Peek(id)
		if !ok || !rec.entry.Key.HasPrefix(prefix) {
			continue
		}
		rec.entry.Stale = true
		marked = append(marked, rec.entry)
		n++
	}
	for id, f := range c.inflight {
		if keyFromID(id).HasPrefix(prefix) {
			f.invalidated = true
			c.group.Forget(id)
		}
	}
	var refetch []target
	if c.policy.RefetchOnInvalidate && !c.closed {
		for id, set := range c.observers {
			k := keyFromID(id)
			if !k.HasPrefix(prefix) {
				continue
			}
			for o := range set {
				refetch = append(refetch, target{key: k, fetch: o.fetch})
				break
			}
		}
	}
	c.mu.Unlock()

	invalidationsTotal.Add(float64(n))
	for _, e := range marked {
		c.notify(e.Key.id(), e)
	}
	for _, t := range refetch {
		c.background(t.key, t.fetch)
	}
	return n
}

// Remove drops every entry under prefix.
func (c *Cache) Remove(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.entries.Keys() {
		if keyFromID(id).HasPrefix(prefix) {
			c.entries.Remove(id)
		}
	}
}

// Clear drops every entry, e.g. on logout. Fetches in flight still answer
// their callers but their results are not stored.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
	for id, f := range c.inflight {
		f.dropped = true
		c.group.Forget(id)
		delete(c.inflight, id)
	}
}

func (c *Cache) background(key Key, fetch Fetcher) {
	j := job.New("refetch "+key.String(), func(ctx context.Context) error {
		_, err := c.Read(ctx, key, fetch)
		if errors.Is(err, ErrClosed) {
			return nil
		}
		return err
	})
	if _, err := c.exec.SubmitCoalesced(context.Background(), key.id(), j); err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("could not schedule refetch")
	}
}

func keyFromID(id string) Key {
	return Key(splitID(id))
}
