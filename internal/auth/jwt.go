package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Signer issues and verifies session tokens. The signing secret is
// process-wide and read-only after startup; rotating it invalidates
// every outstanding token.
type Signer struct {
	Secret []byte
	Iss    string
	TTL    time.Duration // e.g. 30 * 24 * time.Hour
}

func NewSigner(secret []byte, iss string, ttl time.Duration) *Signer {
	return &Signer{Secret: secret, Iss: iss, TTL: ttl}
}

// IssueToken embeds the identity's id, email and role into a signed token.
// Role enrichment happens exactly once, here, at login time.
func (s *Signer) IssueToken(id Identity) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.TTL)

	claims := jwt.MapClaims{
		"iss":   s.Iss,
		"sub":   id.ID,
		"email": id.Email,
		"role":  string(id.Role),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(s.Secret)
	return ss, exp, err
}

// ParseAndValidate rejects bad signatures, wrong algorithms and expired
// tokens with the same opaque error; callers treat all of them as "no token".
func (s *Signer) ParseAndValidate(tokenStr string) (*Claims, error) {
	keyFunc := func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	}

	tok, err := jwt.ParseWithClaims(
		tokenStr,
		jwt.MapClaims{},
		keyFunc,
		jwt.WithIssuer(s.Iss),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	std := tok.Claims.(jwt.MapClaims)

	getString := func(k string) string {
		if v, ok := std[k].(string); ok {
			return v
		}
		return ""
	}
	getInt64 := func(k string) int64 {
		switch v := std[k].(type) {
		case float64:
			return int64(v)
		case int64:
			return v
		default:
			return 0
		}
	}

	c := &Claims{
		Sub:       getString("sub"),
		Email:     getString("email"),
		Role:      Role(getString("role")),
		IssuedAt:  getInt64("iat"),
		ExpiresAt: getInt64("exp"),
	}
	if c.Sub == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
