package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateJWT(secret, userID, "user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Issuer != "campaign-studio" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("right-secret", uuid.New(), "user@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT("wrong-secret", token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	// sub-second expiration: already in the past once issued
	token, err := GenerateJWT("secret", uuid.New(), "user@example.com", time.Nanosecond)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseJWT_Garbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.token"); err == nil {
		t.Fatal("expected parse error")
	}
}
