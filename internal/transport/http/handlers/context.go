package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rumonkh0/quizbackend/internal/transport/http/middleware"
)

// accountRef returns the authenticated account ID as a nullable reference,
// nil when the request is unauthenticated.
func accountRef(c *gin.Context) *string {
	if id, ok := middleware.GetAuthenticatedAccountID(c); ok && id != "" {
		return &id
	}
	return nil
}
