package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/infra/security"
)

const (
	// AccountIDKey is the context key for the authenticated account ID
	AccountIDKey = "account_id"
	// RoleKey is the context key for the authenticated account role
	RoleKey = "role"
	// ClaimsKey is the context key for the parsed session claims
	ClaimsKey = "claims"

	sessionCookieName = "token"
)

type authError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RequireAuth validates the session token and stores its claims on the context.
// The token is read from the Authorization header, falling back to the session cookie.
func RequireAuth(issuer *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				token = cookie
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				authError{Error: "Not authorized to access this route"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			switch {
			case errors.Is(err, security.ErrExpiredToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					authError{Error: "Session expired"})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					authError{Error: "Not authorized to access this route"})
			}
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(RoleKey, claims.Role)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

// RequireAdmin allows only accounts carrying the admin role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(RoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				authError{Error: "Not authorized to access this route"})
			return
		}

		role, ok := roleVal.(string)
		if !ok || role != string(domain.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				authError{Error: "Admin access required"})
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetAuthenticatedAccountID retrieves the account ID from context (helper for handlers)
func GetAuthenticatedAccountID(c *gin.Context) (string, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return "", false
	}

	if id, ok := accountID.(string); ok {
		return id, true
	}

	return "", false
}
