package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/promisor/pkg/helpers"
	"github.com/oksasatya/promisor/pkg/response"
)

const (
	CtxMemberID    = "memberID"
	CtxMemberEmail = "memberEmail"
)

// accessToken reads the access_token cookie, falling back to an Authorization: Bearer header.
func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(helpers.AccessCookie); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth validates the access token and, when rdb is set, that its session is still current.
// It sets memberID and memberEmail in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		if rdb != nil {
			key := "member:session:" + claims.MemberID
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 {
				response.Abort(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			if data["sid"] != claims.SessionID {
				response.Abort(c, http.StatusUnauthorized, "session expired", nil)
				return
			}
		}

		c.Set(CtxMemberID, claims.MemberID)
		c.Set(CtxMemberEmail, claims.Email)
		c.Next()
	}
}
