package handlers

import (
	"net/http"
	"strings"

	"scholarspace-backend/service"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key under which RequireAuth stores the
// authenticated user's id.
const userIDKey = "user_id"

// RequireAuth verifies the bearer token on the request and aborts with 401
// when it is missing, malformed, or expired.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header with bearer token is required",
				},
			})
			return
		}

		userID, err := authService.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}
