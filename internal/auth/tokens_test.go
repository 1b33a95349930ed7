//go:build unit

package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, exp, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expected expiry in the future, got %v", exp)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := claims.AdminID()
	if err != nil || id != 42 {
		t.Errorf("expected admin id 42, got %d (%v)", id, err)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("expected role %q, got %q", RoleAdmin, claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret", time.Hour)
	other, _ := NewTokenIssuer("other-secret", time.Hour)
	expired, _ := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	forged, _, _ := other.Issue(1)
	stale, _, _ := expired.Issue(1)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", forged},
		{"expired", stale},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	if _, err := NewTokenIssuer("", time.Hour); err == nil {
		t.Error("expected an error for an empty secret")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("rahasia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPassword(hash, "rahasia") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "salah") {
		t.Error("expected wrong password to be rejected")
	}
}
