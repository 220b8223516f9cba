package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"employee-directory/internal/pkg/jwtutil"
	"employee-directory/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextEmailKey    = "email"
	ContextUsernameKey = "username"
)

// AuthJWT gates a route group behind a valid bearer token. It only proves the
// caller authenticated recently; there are no roles to check beyond that.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}
