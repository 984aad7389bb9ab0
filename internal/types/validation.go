package types

import "fmt"

// ValidateID rejects non-positive resource identifiers before any HTTP call.
func ValidateID(id int, name string) error {
	if id <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, id)
	}
	return nil
}

// HasRole reports whether role is one of allowed.
func (u *User) HasRole(allowed ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range allowed {
		if u.Role == r {
			return true
		}
	}
	return false
}
