package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"book-commons/internal/service"
	mdw "book-commons/internal/transport/http/middleware"
	resp "book-commons/internal/transport/http/response"
)

type AuthHandler struct {
	auth service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login 只有这个入口收明文凭证：Basic 头优先，其次 JSON 体。
// 换到手的 token 即此后所有受保护路由的通行证。
func (h *AuthHandler) Login(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
			resp.Unauthorized(c, "credentials required")
			return
		}
		email, password = body.Email, body.Password
	}

	token, _, err := h.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"authToken": token})
}

// Refresh 要求当前 token 仍然有效，按其身份换一张更晚过期的。
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims, ok := mdw.Claims(c)
	if !ok {
		resp.Unauthorized(c, "Unauthorized")
		return
	}
	token, err := h.auth.Refresh(claims)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"authToken": token})
}
