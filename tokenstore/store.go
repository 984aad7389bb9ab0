// Package tokenstore persists the bearer token, the only durable piece of
// client state. Everything else is rebuilt from the backend on start.
package tokenstore

import (
	"errors"
	"io"
)

// Key is the well-known name the token is stored under.
const Key = "token"

// Store loads, saves and clears the persisted token. Load returns "" with a
// nil error when no token is stored.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ErrUnknownKind is returned by Open for an unsupported store kind.
var ErrUnknownKind = errors.New("unknown token store kind")

// Open builds the store named by kind ("memory", "file" or "sqlite"). An empty
// path selects the default location under DefaultDir.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "memory":
		return NewMemory(), nil
	case "", "file":
		if path == "" {
			p, err := DefaultPath("token.json")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFile(path), nil
	case "sqlite":
		if path == "" {
			p, err := DefaultPath("state.db")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewSQLite(path)
	default:
		return nil, ErrUnknownKind
	}
}

// Close releases s if it holds resources, as the sqlite store does.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
