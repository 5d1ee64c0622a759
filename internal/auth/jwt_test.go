package auth

import (
	"testing"
	"time"
)

var testIdentity = Identity{
	ID:    "64f0c2a1b2c3d4e5f6a7b8c9",
	Email: "owner@example.com",
	Name:  "Owner",
	Role:  RoleAdmin,
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	s := NewSigner([]byte("test-secret"), "portfolio-backend", time.Hour)

	tok, exp, err := s.IssueToken(testIdentity)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry should be in the future")
	}

	c, err := s.ParseAndValidate(tok)
	if err != nil {
		t.Fatalf("ParseAndValidate error: %v", err)
	}
	if c.Sub != testIdentity.ID {
		t.Errorf("sub = %q, want %q", c.Sub, testIdentity.ID)
	}
	if c.Email != testIdentity.Email {
		t.Errorf("email = %q, want %q", c.Email, testIdentity.Email)
	}
	if c.Role != RoleAdmin {
		t.Errorf("role = %q, want admin", c.Role)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	s := NewSigner([]byte("test-secret"), "portfolio-backend", -time.Minute)
	tok, _, err := s.IssueToken(testIdentity)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if _, err := s.ParseAndValidate(tok); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	s := NewSigner([]byte("test-secret"), "portfolio-backend", time.Hour)
	tok, _, err := s.IssueToken(testIdentity)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	other := NewSigner([]byte("other-secret"), "portfolio-backend", time.Hour)
	if _, err := other.ParseAndValidate(tok); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	s := NewSigner([]byte("test-secret"), "portfolio-backend", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := s.ParseAndValidate(tok); err == nil {
			t.Errorf("expected %q to be rejected", tok)
		}
	}
}
