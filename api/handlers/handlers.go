package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"echo-journal/api/dto"
	"echo-journal/api/middleware"
)

// requireUserID reads the authenticated user from the request context. The
// auth middleware always sets it; a missing value means the route was wired
// without the middleware.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "missing_user_identity"})
		return "", false
	}
	return userID, true
}

func daysAgo(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
