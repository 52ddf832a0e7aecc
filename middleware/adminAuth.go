package middleware

import (
	"net/http"
	"strings"

	"rosterly/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware gates admin-only routes behind the configured static
// bearer token. Full authentication is owned by an external collaborator;
// this only answers "is this caller the deployment's admin".
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := config.AppConfig.AdminToken
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access is not configured"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if tokenString != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
