package middleware

import (
	"github.com/gin-gonic/gin"

	"tattoo-backend/internal/shared/response"
)

// AdminMiddleware gates a route to admin users. Must run after
// AuthMiddleware, which puts the role into the context.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role := c.GetString(CtxRole); role != "admin" {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
