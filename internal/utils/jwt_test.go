package utils

import (
	"testing"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("super-secret", 42, "a@x.com", true, 60)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}

	claims, err := ParseAccessToken("super-secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id mismatch: got %d want 42", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Fatal("admin flag lost in round trip")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("secret", 1, "u@x.com", false, -1)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if _, err := ParseAccessToken("secret", tok.Token); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("right-secret", 7, "u@x.com", false, 60)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if _, err := ParseAccessToken("wrong-secret", tok.Token); err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestParseAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseAccessToken("k", "not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestRefreshToken_HashIsStable(t *testing.T) {
	t.Parallel()

	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if len(rt.Raw) != 96 { // 48 random bytes hex encoded
		t.Fatalf("unexpected raw length: %d", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
		t.Fatal("hash of the same raw token differs")
	}
	other, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if HashRefreshRaw(rt.Raw) == HashRefreshRaw(other.Raw) {
		t.Fatal("two distinct tokens hash to the same value")
	}
}
