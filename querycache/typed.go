package querycache

import (
	"context"
	"fmt"
)

// Get reads key through c and asserts the cached value to T.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	e, err := c.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	return As[T](e)
}

// As returns e.Data as T. An entry without data yields the zero value.
func As[T any](e Entry) (T, error) {
	var zero T
	if e.Data == nil {
		return zero, nil
	}
	v, ok := e.Data.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %s holds %T, not %T", e.Key, e.Data, zero)
	}
	return v, nil
}
