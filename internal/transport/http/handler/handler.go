// Package handler 是 HTTP 路由到 service 的薄胶水层。
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"book-commons/internal/errs"
	"book-commons/internal/service"
	resp "book-commons/internal/transport/http/response"
)

// fail 把 service 层错误映射成 HTTP 响应，不认识的一律 500 并留日志。
func fail(c *gin.Context, l *zap.Logger, err error) {
	var fe *service.FieldError
	switch {
	case errors.As(err, &fe):
		resp.BadField(c, fe.Message, fe.Location)
	case errors.Is(err, errs.ErrNotFound):
		resp.NotFound(c, "Not found")
	case errors.Is(err, errs.ErrForbidden):
		resp.Forbidden(c, "Forbidden")
	case errors.Is(err, errs.ErrUnauthorized):
		resp.Unauthorized(c, "Unauthorized")
	default:
		l.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("rid", c.GetString("X-Request-ID")),
			zap.Error(err),
		)
		resp.Internal(c)
	}
}
