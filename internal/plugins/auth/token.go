package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Validate for every token failure: malformed
// input, signature mismatch, or expiry in the past. Callers get a single
// opaque failure so nothing about the token internals leaks to clients.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and validates stateless signed access tokens. A token
// embeds the subject username and an absolute expiry; nothing is stored
// server-side. Limitation: because tokens are stateless there is no
// server-initiated revocation -- acceptable for a single-admin system.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	alg    string
}

// NewTokenService creates a token service for the given signing secret and
// algorithm name (e.g. "HS256"). Only HMAC algorithms are accepted since the
// configuration carries a shared secret, not a key pair.
func NewTokenService(secret, algorithm string) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not secret-based", algorithm)
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
		alg:    algorithm,
	}, nil
}

// Issue creates a signed token asserting `subject` until now+ttl.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate checks the token's signature and expiry and returns the embedded
// subject. The signing method is pinned to the configured algorithm so a
// token can't downgrade to "none" or swap to a different scheme. Expiry is
// an exact cutoff against this process's clock -- no grace window.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.alg}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
