// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/utils"
)

// AuthRequired verifies the bearer token and stores the admin id in the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, errs.Unauthorized(i18n.KeyAuthRequired))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			utils.AbortWithError(c, errs.Unauthorized(i18n.KeyAuthInvalidToken))
			return
		}

		claims, err := utils.ValidateJWT(strings.TrimSpace(parts[1]))
		if err != nil {
			key := i18n.KeyAuthInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				key = i18n.KeyAuthTokenExpired
			}
			utils.AbortWithError(c, errs.Wrap(errs.KindUnauthorized, key, err))
			return
		}

		c.Set(utils.ContextKeyAdminID, claims.AdminID)
		c.Next()
	}
}
