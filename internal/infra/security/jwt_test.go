package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", "quizbackend"); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewTokenIssuer("   ", "quizbackend"); err == nil {
		t.Fatal("expected error for blank secret")
	}
}

func TestIssueAndParse(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "quizbackend")
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}

	token, err := issuer.Issue("account-1", "a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if claims.AccountID != "account-1" {
		t.Fatalf("expected account id account-1, got %s", claims.AccountID)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %s", claims.Email)
	}
	if claims.Role != "user" {
		t.Fatalf("expected role user, got %s", claims.Role)
	}

	if claims.ExpiresAt == nil {
		t.Fatal("expected expiry claim to be set")
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < TokenTTL-time.Minute || remaining > TokenTTL {
		t.Fatalf("expected ~7 day validity, got %s", remaining)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "quizbackend")
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}

	other, err := NewTokenIssuer("other-secret", "quizbackend")
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}

	token, err := other.Issue("account-1", "a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "quizbackend")
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}

	past := time.Now().UTC().Add(-time.Hour)
	claims := SessionClaims{
		AccountID: "account-1",
		Email:     "a@x.com",
		Role:      "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past.Add(-TokenTTL)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := issuer.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseRejectsEmptyToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "quizbackend")
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}

	if _, err := issuer.Parse(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
