package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minbase/account-service/pkg/helpers"
	"github.com/minbase/account-service/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth reads the Authorization bearer token, validates it, and injects the
// subject user id into the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid access token", err.Error())
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
