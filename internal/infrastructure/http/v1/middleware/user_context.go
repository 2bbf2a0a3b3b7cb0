// Package middleware provides HTTP middleware for the rice-mill API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"ricemill/internal/core/security"
)

// UserContext copies the authenticated user id from gin context into the
// request context, where the domain layer stamps createdBy/updatedBy from it.
// Must run after Auth.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetString("user_id"); uid != "" {
			ctx := security.WithUserID(c.Request.Context(), uid)
			ctx = security.WithScope(ctx, security.NewAccessScope(ctx))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
