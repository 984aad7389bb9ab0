package job

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNew_NilGuard(t *testing.T) {
	t.Parallel()
	j := New("refetch", nil)
	err := j.Run(context.Background())
	if !errors.Is(err, ErrNilJobFunc) {
		t.Fatalf("expected ErrNilJobFunc, got %v", err)
	}
	if err.Error() != "refetch: nil JobFunc" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestNew_PassesContext(t *testing.T) {
	t.Parallel()
	type ctxKey string
	key := ctxKey("k")
	ctx := context.WithValue(context.Background(), key, "v")

	called := false
	j := New("save theme", func(c context.Context) error {
		called = true
		if got, ok := c.Value(key).(string); !ok || got != "v" {
			return fmt.Errorf("context value mismatch: %v", c.Value(key))
		}
		return nil
	})

	if err := j.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected wrapped function to be called")
	}
	if j.String() != "save theme" {
		t.Fatalf("unexpected name: %s", j.String())
	}
}

func TestNew_WrapsErrorWithName(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("boom")
	err := New("refetch boards", func(context.Context) error { return sentinel }).Run(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if err.Error() != "refetch boards: boom" {
		t.Fatalf("unexpected message: %v", err)
	}
}
