package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_ProducesVerifiableDigest(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected PHC argon2id format, got %q", hash)
	}
	if !VerifyPassword("admin123", hash) {
		t.Error("expected password to verify against its own hash")
	}
	if VerifyPassword("admin124", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPassword_SaltVariesPerCall(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if first == second {
		t.Error("expected different digests for repeated hashing (fresh salt)")
	}
	if !VerifyPassword("same-password", first) || !VerifyPassword("same-password", second) {
		t.Error("expected both digests to verify")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	// A corrupt or unknown digest must return false, never panic or error.
	malformed := []string{
		"",
		"plaintext",
		"$argon2id$",
		"$argon2id$v=19$m=65536,t=3,p=4$short",
		"$argon2id$v=19$m=abc,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!notbase64!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$!!notbase64!!",
		"$2a$10$bcryptstylehashthatisnotargon2atall1234567890123456789",
	}

	for _, digest := range malformed {
		if VerifyPassword("whatever", digest) {
			t.Errorf("expected verification to fail for digest %q", digest)
		}
	}
}
