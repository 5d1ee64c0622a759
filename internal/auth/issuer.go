package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials covers both "no such user" and "wrong password";
// callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Issuer exchanges an email+password pair for a signed session token.
type Issuer struct {
	Users  UserStore
	Signer *Signer
}

func NewIssuer(users UserStore, signer *Signer) *Issuer {
	return &Issuer{Users: users, Signer: signer}
}

// Authenticate checks the supplied credentials against the store. It has no
// side effects beyond the lookup; brute-force protection is the caller's job.
func (i *Issuer) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := i.Users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err // storage failure, not an auth verdict
	}
	ok, err := VerifyPassword(password, u.PassHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
}

// Login authenticates and, on success, issues a token carrying the
// identity's id, email and role.
func (i *Issuer) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	id, err := i.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	tok, exp, err := i.Signer.IssueToken(*id)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: tok, ExpiresAt: exp.UTC().Truncate(time.Second), User: *id}, nil
}
