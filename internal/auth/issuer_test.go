package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestIssuer(t *testing.T) (*Issuer, *MemoryUserStore) {
	t.Helper()
	users := NewMemoryUserStore()
	hash, err := HashPassword(DefaultArgon, "longenough1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if err := users.Add(context.Background(), &User{
		Email:    "a@x.com",
		Name:     "A",
		PassHash: hash,
		Role:     RoleUser,
	}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	signer := NewSigner([]byte("test-secret"), "portfolio-backend", time.Hour)
	return NewIssuer(users, signer), users
}

func TestAuthenticateSuccess(t *testing.T) {
	iss, _ := newTestIssuer(t)
	id, err := iss.Authenticate(context.Background(), "a@x.com", "longenough1")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if id.Email != "a@x.com" || id.Role != RoleUser {
		t.Errorf("unexpected identity: %+v", id)
	}
	if id.ID == "" {
		t.Errorf("identity id should be set")
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthenticateFailureIndistinguishable(t *testing.T) {
	iss, _ := newTestIssuer(t)
	ctx := context.Background()

	_, errUnknown := iss.Authenticate(ctx, "nobody@x.com", "longenough1")
	_, errWrongPw := iss.Authenticate(ctx, "a@x.com", "wrongpassword")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestAuthenticateEmptyInputs(t *testing.T) {
	iss, _ := newTestIssuer(t)
	ctx := context.Background()
	for _, tc := range [][2]string{{"", "longenough1"}, {"a@x.com", ""}, {"", ""}} {
		if _, err := iss.Authenticate(ctx, tc[0], tc[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q, %q) = %v, want ErrInvalidCredentials", tc[0], tc[1], err)
		}
	}
}

// A token issued at login decodes back to the same id, email and role.
func TestLoginTokenRoundTrip(t *testing.T) {
	iss, _ := newTestIssuer(t)
	resp, err := iss.Login(context.Background(), "a@x.com", "longenough1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	c, err := iss.Signer.ParseAndValidate(resp.Token)
	if err != nil {
		t.Fatalf("ParseAndValidate error: %v", err)
	}
	if c.Sub != resp.User.ID {
		t.Errorf("sub = %q, want %q", c.Sub, resp.User.ID)
	}
	if c.Email != resp.User.Email {
		t.Errorf("email = %q, want %q", c.Email, resp.User.Email)
	}
	if c.Role != resp.User.Role {
		t.Errorf("role = %q, want %q", c.Role, resp.User.Role)
	}
}
