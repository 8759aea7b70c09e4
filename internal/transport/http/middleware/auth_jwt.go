package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"book-commons/internal/core/auth"
	resp "book-commons/internal/transport/http/response"
)

const (
	KeyClaims = "claims"
	KeyUserID = "userId"
)

// AuthJWT 统一的鉴权方案：受保护路由只认 Bearer token。
// 校验失败按原因回不同提示，但状态码一律 401，且不产生任何副作用。
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Unauthorized(c, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				resp.Unauthorized(c, "token expired")
			case errors.Is(err, auth.ErrTokenSignature):
				resp.Unauthorized(c, "invalid token signature")
			default:
				resp.Unauthorized(c, "invalid token")
			}
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID)
		c.Next()
	}
}

// Claims 从上下文取出已解析的身份，没走 AuthJWT 的路由拿不到。
func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*auth.Claims)
	return cl, ok
}
