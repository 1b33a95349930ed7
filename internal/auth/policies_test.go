//go:build unit

package auth

import (
	"testing"
	"wonders-cms/internal/logger"
)

func TestSeedDefaultPolicies(t *testing.T) {
	e, err := NewMemoryEnforcer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	SeedDefaultPolicies(e, logger.Nop())
	// Seeding twice must not duplicate anything.
	SeedDefaultPolicies(e, logger.Nop())

	tests := []struct {
		sub, obj, act string
		want          bool
	}{
		{RoleAnonymous, "/jelajahi/kategori", "GET", true},
		{RoleAnonymous, "/jelajahi/pages/detail/pantai-indah", "GET", true},
		{RoleAnonymous, "/home", "GET", true},
		{RoleAnonymous, "/uploads/jelajahi/images/a.jpg", "GET", true},
		{RoleAnonymous, "/admin/auth/login", "POST", true},
		{RoleAnonymous, "/jelajahi/kategori", "POST", false},
		{RoleAnonymous, "/jelajahi/kategori/1", "DELETE", false},
		{RoleAnonymous, "/admin/dashboard/summary", "GET", false},
		{RoleAdmin, "/jelajahi/kategori/1", "DELETE", true},
		{RoleAdmin, "/admin/dashboard/summary", "GET", true},
		{RoleAdmin, "/home", "GET", true},
	}
	for _, tt := range tests {
		got, err := e.Enforce(tt.sub, tt.obj, tt.act)
		if err != nil {
			t.Fatalf("enforce %v: %v", tt, err)
		}
		if got != tt.want {
			t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.sub, tt.obj, tt.act, got, tt.want)
		}
	}
}
