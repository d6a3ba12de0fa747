package middleware

import (
	"net/http"                       // HTTP status codes
	"recipe_api/internal/repository" // User lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// StaffOnlyMiddleware re-checks the caller's staff flag from the database
// on each request, so revoking the flag takes effect immediately
func StaffOnlyMiddleware(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID.(uint))
		if err != nil || !user.IsStaff {
			// Non-staff callers are rejected with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
