// Package shardqueue runs the client's background work: cache refetches and
// fire-and-forget writes such as theme saves. Work for one key runs in
// submission order on one worker; different keys may run in parallel.
//
// A job runs at most once. Failures go to Config.ErrorHandler and are never
// retried.
package shardqueue

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Job is one unit of background work.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc func(ctx context.Context) error

// Run implements Job.
func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// Config tunes an Executor. Zero values take defaults.
type Config struct {
	Workers        int
	QueueSize      int
	EnqueueTimeout time.Duration

	// ErrorHandler is called on the worker goroutine after a job fails,
	// panics or is skipped because its context ended.
	ErrorHandler func(error)
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 128
	}
	if c.EnqueueTimeout <= 0 {
		c.EnqueueTimeout = 100 * time.Millisecond
	}
	return c
}

type task struct {
	ctx  context.Context
	key  string
	job  Job
	kind string
	// coalesced tasks hold the key's slot in pending until they start.
	coalesced bool
}

// Executor is safe for concurrent use.
type Executor struct {
	cfg    Config
	queues []chan task

	mu      sync.Mutex
	pending map[string]struct{}

	done   chan struct{}
	closed atomic.Bool
	wg     sync.WaitGroup
}

// New starts an executor with cfg.Workers workers.
func New(cfg Config) *Executor {
	cfg = cfg.withDefaults()
	e := &Executor{
		cfg:     cfg,
		queues:  make([]chan task, cfg.Workers),
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	for i := range e.queues {
		ch := make(chan task, cfg.QueueSize)
		e.queues[i] = ch
		e.wg.Add(1)
		go e.work(i, ch)
	}
	return e
}

// Submit queues job behind earlier work for key. It fails with
// ErrExecutorClosed after Stop, with a *QueueFullError when the worker's
// queue stays full for EnqueueTimeout, or with ctx.Err().
func (e *Executor) Submit(ctx context.Context, key string, job Job) error {
	return e.enqueue(ctx, task{ctx: ctx, key: key, job: job, kind: kindOf(job)})
}

// SubmitCoalesced is Submit, except that while an earlier coalesced job for
// key is still waiting to start, job is dropped and queued is false. Once
// that job starts, the next call queues again.
func (e *Executor) SubmitCoalesced(ctx context.Context, key string, job Job) (queued bool, err error) {
	t := task{ctx: ctx, key: key, job: job, kind: kindOf(job), coalesced: true}
	e.mu.Lock()
	if _, ok := e.pending[key]; ok {
		e.mu.Unlock()
		coalescedTotal.WithLabelValues(t.kind).Inc()
		return false, nil
	}
	e.pending[key] = struct{}{}
	e.mu.Unlock()

	if err := e.enqueue(ctx, t); err != nil {
		e.release(t)
		return false, err
	}
	return true, nil
}

// Flush waits until everything queued for key before the call has run.
func (e *Executor) Flush(ctx context.Context, key string) error {
	reached := make(chan struct{})
	if err := e.Submit(ctx, key, JobFunc(func(context.Context) error {
		close(reached)
		return nil
	})); err != nil {
		return err
	}
	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new work, runs what is already queued and returns once every
// worker has exited. Jobs queued before Stop run even if their context has
// ended since. Stop is idempotent.
func (e *Executor) Stop() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	close(e.done)
	e.wg.Wait()
	log.Debug().Int("workers", e.cfg.Workers).Msg("shardqueue: stopped")
}

// Close implements io.Closer.
func (e *Executor) Close() error {
	e.Stop()
	return nil
}

func (e *Executor) enqueue(ctx context.Context, t task) error {
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	w := e.workerFor(t.key)
	ch := e.queues[w]

	timer := time.NewTimer(e.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- t:
		submittedTotal.WithLabelValues(t.kind).Inc()
		queueDepth.WithLabelValues(workerLabel(w)).Set(float64(len(ch)))
		return nil
	case <-e.done:
		return ErrExecutorClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		queueFullTotal.Inc()
		return &QueueFullError{Key: t.key, Length: len(ch), Capacity: cap(ch)}
	}
}

func (e *Executor) work(w int, ch <-chan task) {
	defer e.wg.Done()
	label := workerLabel(w)
	for {
		select {
		case t := <-ch:
			queueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := t.ctx.Err(); err != nil {
				e.release(t)
				e.report(fmt.Errorf("%s skipped: %w", t.kind, err))
				continue
			}
			e.run(t)
		case <-e.done:
			n := 0
			for {
				select {
				case t := <-ch:
					e.run(t)
					n++
				default:
					if n > 0 {
						log.Debug().Int("worker", w).Int("jobs", n).Msg("shardqueue: drained")
					}
					queueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		}
	}
}

func (e *Executor) run(t task) {
	e.release(t)
	start := time.Now()
	err := e.call(t)
	runDuration.WithLabelValues(t.kind).Observe(time.Since(start).Seconds())
	if err != nil {
		failuresTotal.WithLabelValues(t.kind).Inc()
		e.report(err)
	}
}

// call runs t.job, turning a panic into ErrJobPanic.
func (e *Executor) call(t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("key", t.key).Interface("panic", r).Msg("shardqueue: job panic")
			err = fmt.Errorf("%w: %v", ErrJobPanic, r)
		}
	}()
	return t.job.Run(t.ctx)
}

func (e *Executor) release(t task) {
	if !t.coalesced {
		return
	}
	e.mu.Lock()
	delete(e.pending, t.key)
	e.mu.Unlock()
}

func (e *Executor) report(err error) {
	if e.cfg.ErrorHandler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("shardqueue: error handler panic")
		}
	}()
	e.cfg.ErrorHandler(err)
}

func (e *Executor) workerFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(e.queues)))
}
