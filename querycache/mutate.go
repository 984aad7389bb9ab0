package querycache

import "context"

// Mutate runs fn, an uncached write. Only after fn succeeds is every key in
// invalidate invalidated; on failure the cache is untouched and the error is
// returned as is.
func (c *Cache) Mutate(ctx context.Context, fn func(context.Context) error, invalidate ...Key) error {
	if err := fn(ctx); err != nil {
		mutationsTotal.WithLabelValues("failure").Inc()
		return err
	}
	mutationsTotal.WithLabelValues("success").Inc()
	for _, k := range invalidate {
		c.Invalidate(k)
	}
	return nil
}

// Run is Mutate for writes that return a value.
func Run[T any](ctx context.Context, c *Cache, fn func(context.Context) (T, error), invalidate ...Key) (T, error) {
	var out T
	err := c.Mutate(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	}, invalidate...)
	return out, err
}
