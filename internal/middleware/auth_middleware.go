package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

// AuthMiddleware validates the Bearer token and stores the caller's identity
// on the request context.
func AuthMiddleware(tokenService services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorizedError(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			utils.SendUnauthorizedError(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokenService.ValidateAccessToken(tokenParts[1])
		if err != nil {
			utils.SendUnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// AdminOnlyMiddleware gates admin endpoints; requires AuthMiddleware upstream.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			utils.SendUnauthorizedError(c, "User role not found")
			c.Abort()
			return
		}

		if userRole.(models.UserRole) != models.RoleAdmin {
			utils.SendForbiddenError(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserIDFromContext returns the authenticated user's ID set by
// AuthMiddleware.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
