package types

import "testing"

func TestValidateID(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in int
		ok bool
	}{
		{1, true}, {42, true}, {0, false}, {-3, false},
	}
	for _, c := range cases {
		err := ValidateID(c.in, "boardId")
		if c.ok && err != nil {
			t.Fatalf("expected ok for %d, got %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("expected error for %d", c.in)
		}
	}
}

func TestUserHasRole(t *testing.T) {
	t.Parallel()
	var nilUser *User
	if nilUser.HasRole(RoleAdmin) {
		t.Fatal("nil user must not have any role")
	}
	u := &User{Role: RoleManager}
	if !u.HasRole(RoleAdmin, RoleManager) {
		t.Fatal("manager should match admin|manager")
	}
	if u.HasRole(RoleAdmin) {
		t.Fatal("manager should not match admin")
	}
}
