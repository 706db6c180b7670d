package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret, "HS256")
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	return svc
}

func TestNewTokenService_RejectsBadAlgorithms(t *testing.T) {
	if _, err := NewTokenService("secret", "ES999"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
	// RS256 needs a key pair, not a shared secret.
	if _, err := NewTokenService("secret", "RS256"); err == nil {
		t.Error("expected error for non-HMAC algorithm")
	}
	if _, err := NewTokenService("secret", "none"); err == nil {
		t.Error("expected error for the unsigned algorithm")
	}
}

func TestTokenService_IssueThenValidate(t *testing.T) {
	svc := newTestTokenService(t, "super-secret")

	token, err := svc.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if subject != "admin" {
		t.Errorf("expected subject %q, got %q", "admin", subject)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, "super-secret")

	token, err := svc.Issue("admin", -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "right-secret")
	verifier := newTestTokenService(t, "wrong-secret")

	token, err := issuer.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for signature mismatch, got %v", err)
	}
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := newTestTokenService(t, "super-secret")

	for _, bad := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		if _, err := svc.Validate(bad); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", bad, err)
		}
	}
}
