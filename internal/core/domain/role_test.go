package domain

import "testing"

func TestResolveRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
	}{
		{"admin", RoleAdmin},
		{"Admin", RoleAdmin},
		{"  ADMIN  ", RoleAdmin},
		{"administrator", RoleAdmin},
		{"photographer", RolePhotographer},
		{" PHOTOGRAPHER ", RolePhotographer},
		{"Photog", RolePhotographer},
		{"PhotographerPro", RolePhotographer},
		{"buyer", RoleBuyer},
		{"Buyer", RoleBuyer},
		{"buyer-tier-2", RoleBuyer},
		{"user", RoleBuyer},
		{"User", RoleBuyer},
		{"superuser", RoleUnrecognized},
		{"manager", RoleUnrecognized},
		{"", RoleUnrecognized},
		{"   ", RoleUnrecognized},
	}

	for _, tc := range cases {
		if got := ResolveRole(tc.raw); got != tc.want {
			t.Errorf("ResolveRole(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestResolveRole_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := ResolveRole("PhotographerPro"); got != RolePhotographer {
			t.Fatalf("iteration %d: got %q", i, got)
		}
	}
}

func TestResolveRoleHints_FirstNonEmptyWins(t *testing.T) {
	if got := ResolveRoleHints("admin", "buyer", ""); got != RoleAdmin {
		t.Fatalf("expected admin from first hint, got %q", got)
	}
	if got := ResolveRoleHints("", "Photographer", "admin"); got != RolePhotographer {
		t.Fatalf("expected photographer from second hint, got %q", got)
	}
	if got := ResolveRoleHints("", "  ", "buyer"); got != RoleBuyer {
		t.Fatalf("expected buyer from third hint, got %q", got)
	}
}

func TestResolveRoleHints_DefaultsToBuyer(t *testing.T) {
	if got := ResolveRoleHints(); got != RoleBuyer {
		t.Fatalf("no hints: got %q, want buyer", got)
	}
	if got := ResolveRoleHints("", "", ""); got != RoleBuyer {
		t.Fatalf("empty hints: got %q, want buyer", got)
	}
}

func TestResolveRoleHints_UnrecognizedIsNotSkipped(t *testing.T) {
	// A present-but-garbage role must classify as unrecognized, not fall
	// through to the next hint or the buyer default.
	if got := ResolveRoleHints("superuser", "admin"); got != RoleUnrecognized {
		t.Fatalf("got %q, want unrecognized", got)
	}
}

func TestLandingPath(t *testing.T) {
	cases := []struct {
		role Role
		want string
	}{
		{RoleAdmin, PathAdmin},
		{RolePhotographer, PathStudio},
		{RoleBuyer, PathAccount},
		{RoleUnrecognized, PathRoot},
		{Role("something-else"), PathRoot},
	}
	for _, tc := range cases {
		if got := tc.role.LandingPath(); got != tc.want {
			t.Errorf("%q.LandingPath() = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestKnown(t *testing.T) {
	if !RoleAdmin.Known() || !RolePhotographer.Known() || !RoleBuyer.Known() {
		t.Fatalf("real roles must be known")
	}
	if RoleUnrecognized.Known() {
		t.Fatalf("unrecognized must not be known")
	}
}
