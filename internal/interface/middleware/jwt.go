package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mikeodnis/core-service/pkg/helpers"
	"github.com/mikeodnis/core-service/pkg/response"
)

const CtxUserIDKey = "userID"

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// JWTAuth verifies the bearer token and injects the subject into context.
// Any failure aborts with 401 before the handler runs.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			_ = c.Error(err)
			response.Abort(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Next()
	}
}

// UserID returns the authenticated subject, or "" on public routes.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
