package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"echo-journal/auth"
	"echo-journal/logger"
)

// AdminAuthMiddleware verifies the bearer token and requires the 'admin'
// role.
func AdminAuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		userID, role, err := jwtManager.Parse(token)
		if err != nil {
			logger.Log.Debugf("token parse error: %v", err)
			auth.AbortWithUnauthorized(c, err)
			return
		}

		if role != auth.RoleAdmin {
			logger.Log.Warnf("access denied: user %s has role %s, want admin", userID, role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden_insufficient_permissions"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)

		c.Next()
	}
}
