package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is a fetcher that counts calls and can block until released.
type counter struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
	value   any
}

func (f *counter) fetch(ctx context.Context) (any, error) {
	n := f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.value != nil {
		return f.value, nil
	}
	return int(n), nil
}

func newCache(t *testing.T, p Policy) *Cache {
	t.Helper()
	c := New(p)
	t.Cleanup(c.Close)
	return c
}

func TestReadCachesUntilInvalidated(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{}
	key := NewKey("boards", "list", false)
	ctx := context.Background()

	e, err := c.Read(ctx, key, f.fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Data)
	assert.Equal(t, StatusSuccess, e.Status)

	e, err = c.Read(ctx, key, f.fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Data)
	assert.EqualValues(t, 1, f.calls.Load())

	assert.Equal(t, 1, c.Invalidate(NewKey("boards")))
	stale, ok := c.Peek(key)
	require.True(t, ok)
	assert.True(t, stale.Stale)
	assert.Equal(t, 1, stale.Data, "invalidation keeps data")

	e, err = c.Read(ctx, key, f.fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Data)
	assert.False(t, e.Stale)
}

func TestDifferentParamsAreDifferentEntries(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{}
	ctx := context.Background()

	_, _ = c.Read(ctx, NewKey("contacts", "acme"), f.fetch)
	_, _ = c.Read(ctx, NewKey("contacts", "globex"), f.fetch)
	assert.EqualValues(t, 2, f.calls.Load())

	c.Invalidate(NewKey("contacts", "acme"))
	e, _ := c.Peek(NewKey("contacts", "globex"))
	assert.False(t, e.Stale)
}

func TestConcurrentReadsShareOneFetch(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{release: make(chan struct{})}
	key := NewKey("boards", "detail", 7)

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := c.Read(context.Background(), key, f.fetch)
			assert.NoError(t, err)
			results[i] = e.Data
		}(i)
	}
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(f.release)
	wg.Wait()

	assert.EqualValues(t, 1, f.calls.Load())
	for _, r := range results {
		assert.Equal(t, 1, r)
	}
}

func TestPrefixMatchingIsElementWise(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{}
	ctx := context.Background()
	_, _ = c.Read(ctx, NewKey("board", 1), f.fetch)
	_, _ = c.Read(ctx, NewKey("boards", "list"), f.fetch)

	assert.Equal(t, 1, c.Invalidate(NewKey("board")))
	e, _ := c.Peek(NewKey("boards", "list"))
	assert.False(t, e.Stale)
}

func TestMutateInvalidatesOnlyAfterSuccess(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{}
	ctx := context.Background()
	key := NewKey("contacts")
	_, _ = c.Read(ctx, key, f.fetch)

	var staleDuringWrite bool
	err := c.Mutate(ctx, func(context.Context) error {
		e, _ := c.Peek(key)
		staleDuringWrite = e.Stale
		return nil
	}, key)
	require.NoError(t, err)
	assert.False(t, staleDuringWrite, "invalidation must not precede the write")

	_, _ = c.Read(ctx, key, f.fetch)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestFailedMutationLeavesCacheAlone(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{}
	ctx := context.Background()
	key := NewKey("boards")
	_, _ = c.Read(ctx, key, f.fetch)

	boom := errors.New("boom")
	err := c.Mutate(ctx, func(context.Context) error { return boom }, key)
	assert.ErrorIs(t, err, boom)

	_, _ = c.Read(ctx, key, f.fetch)
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestUnrelatedMutationsDoNotTouchOtherKeys(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	boards, contacts := &counter{}, &counter{}
	ctx := context.Background()
	_, _ = c.Read(ctx, NewKey("boards"), boards.fetch)
	_, _ = c.Read(ctx, NewKey("contacts"), contacts.fetch)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Mutate(ctx, func(context.Context) error { return nil }, NewKey("contacts"))
		}()
	}
	wg.Wait()

	_, _ = c.Read(ctx, NewKey("boards"), boards.fetch)
	assert.EqualValues(t, 1, boards.calls.Load())
	_, _ = c.Read(ctx, NewKey("contacts"), contacts.fetch)
	assert.EqualValues(t, 2, contacts.calls.Load())
}

func TestFetchStraddlingInvalidationIsStoredStale(t *testing.T) {
	c := newCache(t, Policy{RefetchOnInvalidate: false})
	slow := &counter{release: make(chan struct{}), value: "old"}
	key := NewKey("notifications")

	done := make(chan Entry, 1)
	go func() {
		e, _ := c.Read(context.Background(), key, slow.fetch)
		done <- e
	}()
	require.Eventually(t, func() bool { return slow.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate(key)

	// The next read does not join the detached fetch.
	fresh := &counter{value: "new"}
	e, err := c.Read(context.Background(), key, fresh.fetch)
	require.NoError(t, err)
	assert.Equal(t, "new", e.Data)

	close(slow.release)
	<-done
	got, _ := c.Peek(key)
	assert.Equal(t, "new", got.Data, "older flight must not overwrite newer data")
	assert.False(t, got.Stale)
}

func TestStaleResultFromStraddlingFetch(t *testing.T) {
	c := newCache(t, Policy{RefetchOnInvalidate: false})
	slow := &counter{release: make(chan struct{}), value: "v"}
	key := NewKey("calendar-events")

	done := make(chan struct{})
	go func() {
		_, _ = c.Read(context.Background(), key, slow.fetch)
		close(done)
	}()
	require.Eventually(t, func() bool { return slow.calls.Load() == 1 }, time.Second, time.Millisecond)
	c.Invalidate(key)
	close(slow.release)
	<-done

	e, _ := c.Peek(key)
	assert.Equal(t, "v", e.Data)
	assert.True(t, e.Stale)
}

func TestClearDropsFetchesInFlight(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	slow := &counter{release: make(chan struct{}), value: "previous user"}
	key := NewKey("boards")

	done := make(chan Entry, 1)
	go func() {
		e, _ := c.Read(context.Background(), key, slow.fetch)
		done <- e
	}()
	require.Eventually(t, func() bool { return slow.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Clear()
	close(slow.release)
	e := <-done
	assert.Equal(t, "previous user", e.Data, "the caller still gets its answer")

	_, ok := c.Peek(key)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCancelledReaderDoesNotAbortFetch(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	f := &counter{release: make(chan struct{}), value: "done"}
	key := NewKey("search", "roadmap")

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := c.Read(ctx, key, f.fetch)
		errc <- err
	}()
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	close(f.release)
	require.Eventually(t, func() bool {
		e, ok := c.Peek(key)
		return ok && e.Status == StatusSuccess
	}, time.Second, time.Millisecond)
}

func TestErrorsAreCachedAsErrorStatus(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	boom := errors.New("boom")
	f := &counter{err: boom}
	key := NewKey("reports", "tasks")

	e, err := c.Read(context.Background(), key, f.fetch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusError, e.Status)

	// An error entry is never fresh.
	_, _ = c.Read(context.Background(), key, f.fetch)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestStaleTime(t *testing.T) {
	now := time.Unix(1000, 0)
	c := New(Policy{StaleTime: time.Minute}, withClock(func() time.Time { return now }))
	t.Cleanup(c.Close)
	f := &counter{}
	key := NewKey("users")

	_, _ = c.Read(context.Background(), key, f.fetch)
	now = now.Add(30 * time.Second)
	_, _ = c.Read(context.Background(), key, f.fetch)
	assert.EqualValues(t, 1, f.calls.Load())

	now = now.Add(time.Minute)
	_, _ = c.Read(context.Background(), key, f.fetch)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestMaxEntriesEvicts(t *testing.T) {
	c := newCache(t, Policy{MaxEntries: 2})
	f := &counter{}
	for i := 0; i < 3; i++ {
		_, _ = c.Read(context.Background(), NewKey("boards", "detail", i), f.fetch)
	}
	assert.Equal(t, 2, c.Len())
	_, ok := c.Peek(NewKey("boards", "detail", 0))
	assert.False(t, ok)
}

func TestReadAfterClose(t *testing.T) {
	c := New(DefaultPolicy())
	c.Close()
	c.Close()
	_, err := c.Read(context.Background(), NewKey("x"), (&counter{}).fetch)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestGenericHelpers(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	ctx := context.Background()

	names, err := Get(ctx, c, NewKey("names"), func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = Get(ctx, c, NewKey("names"), func(context.Context) (int, error) { return 1, nil })
	assert.Error(t, err, "type mismatch on a shared key")

	n, err := Run(ctx, c, func(context.Context) (int, error) { return 42, nil }, NewKey("names"))
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	e, _ := c.Peek(NewKey("names"))
	assert.True(t, e.Stale)
}

func TestKey(t *testing.T) {
	k := NewKey("boards", "detail", 7)
	assert.Equal(t, "boards/detail/7", k.String())
	assert.True(t, k.HasPrefix(NewKey("boards")))
	assert.True(t, k.HasPrefix(Key{}))
	assert.False(t, NewKey("boards").HasPrefix(k))
	assert.Equal(t, k, keyFromID(k.id()))
	assert.Equal(t, NewKey("boards", "detail", 7, "cards"), k.With("cards"))
}

func TestKeyIDsDoNotCollide(t *testing.T) {
	keys := []Key{{}, {""}, {"", ""}, {"a"}, {"a", ""}, {"a:b"}, {"a", "b"}, {"search", "x\x00y"}, {"search", "x", "y"}}
	seen := map[string]Key{}
	for _, k := range keys {
		id := k.id()
		if prev, ok := seen[id]; ok {
			t.Fatalf("%q and %q share id %q", prev, k, id)
		}
		seen[id] = k
		if len(k) > 0 {
			assert.Equal(t, k, keyFromID(id))
		}
	}
	assert.Empty(t, keyFromID(Key{}.id()))
}

func TestEmptyPartIsItsOwnEntry(t *testing.T) {
	c := newCache(t, DefaultPolicy())
	ctx := context.Background()
	_, err := c.Read(ctx, Key{}, func(context.Context) (any, error) { return "root", nil })
	require.NoError(t, err)
	e, err := c.Read(ctx, Key{""}, func(context.Context) (any, error) { return "blank", nil })
	require.NoError(t, err)
	assert.Equal(t, "blank", e.Data)
}
