package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session credential lifetimes are fixed policy, not configuration. The
// cookie deliberately expires before the embedded token claim does.
const (
	// TokenTTL is the validity window of the signed session credential.
	TokenTTL = 7 * 24 * time.Hour
	// CookieTTL is the lifetime of the companion token cookie.
	CookieTTL = 3 * 24 * time.Hour
)

var (
	// ErrInvalidToken indicates the token is malformed or its signature failed validation.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken indicates the token's validity window has elapsed.
	ErrExpiredToken = errors.New("session token expired")
)

// SessionClaims carries the identity claims embedded in the session credential.
type SessionClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates session credentials with a process-wide
// HMAC secret injected at construction.
type TokenIssuer struct {
	secret []byte
	issuer string
}

// NewTokenIssuer constructs a TokenIssuer. The secret must be non-empty.
func NewTokenIssuer(secret, issuer string) (*TokenIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &TokenIssuer{secret: []byte(secret), issuer: issuer}, nil
}

// Issue signs a session credential embedding the account's identity claims.
func (t *TokenIssuer) Issue(accountID, email, role string) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("account id is required")
	}

	now := time.Now().UTC()
	claims := SessionClaims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse validates the session credential and returns its claims.
func (t *TokenIssuer) Parse(token string) (*SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if parsed == nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.AccountID) == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
