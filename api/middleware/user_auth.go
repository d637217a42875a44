package middleware

import (
	"github.com/gin-gonic/gin"

	"echo-journal/auth"
	"echo-journal/logger"
)

// Context keys populated by the auth middlewares.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// UserAuthMiddleware verifies the bearer token and stores the caller's
// identity in the request context.
func UserAuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
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

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)

		c.Next()
	}
}
