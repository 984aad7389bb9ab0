package querycache

import (
	"fmt"
	"strconv"
	"strings"
)

// Key addresses one cache entry: a resource name followed by the parameters
// that change the result set. Two keys with different parameters never share
// staleness.
type Key []string

// NewKey builds a Key, formatting each part with fmt.Sprint.
func NewKey(parts ...any) Key {
	k := make(Key, len(parts))
	for i, p := range parts {
		k[i] = fmt.Sprint(p)
	}
	return k
}

// With returns a copy of k extended by parts.
func (k Key) With(parts ...any) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, NewKey(parts...)...)
}

// HasPrefix reports whether prefix matches k element by element, so
// {"board"} does not match {"boards"}. An empty prefix matches every key.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (k Key) String() string { return strings.Join(k, "/") }

// id is the map key. Each part is length-prefixed, so Key{} and Key{""}
// differ and parts may contain any byte.
func (k Key) id() string {
	var b strings.Builder
	for _, p := range k {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

func splitID(id string) []string {
	var parts []string
	for id != "" {
		i := strings.IndexByte(id, ':')
		if i < 0 {
			return parts
		}
		n, err := strconv.Atoi(id[:i])
		if err != nil || i+1+n > len(id) {
			return parts
		}
		parts = append(parts, id[i+1:i+1+n])
		id = id[i+1+n:]
	}
	return parts
}
