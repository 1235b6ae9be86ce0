package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret", time.Hour, "abc123", "ngo@x.org", "ngo")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseAccessToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.ID != "abc123" || claims.Email != "ngo@x.org" || claims.Role != "ngo" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := NewAccessToken("secret", time.Hour, "abc123", "", "volunteer")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseAccessToken("other-secret", token); err == nil {
		t.Fatalf("expected signature mismatch to error")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := NewAccessToken("secret", -time.Minute, "abc123", "", "volunteer")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseAccessToken("secret", token); err == nil {
		t.Fatalf("expected expired token to error")
	}
}
