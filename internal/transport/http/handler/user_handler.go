package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"book-commons/internal/errs"
	"book-commons/internal/service"
	mdw "book-commons/internal/transport/http/middleware"
	resp "book-commons/internal/transport/http/response"
	"book-commons/pkg/utils"
)

type UserHandler struct {
	auth      service.AuthService
	wishlists service.WishlistService
	log       *zap.Logger
}

func NewUserHandler(auth service.AuthService, wishlists service.WishlistService, log *zap.Logger) *UserHandler {
	return &UserHandler{auth: auth, wishlists: wishlists, log: log}
}

// Signup 的字段校验顺序是对外契约：缺字段 → 类型 → 首尾空白 → 长度 → 重复邮箱。
func (h *UserHandler) Signup(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.Validation(c, "Invalid JSON body", "")
		return
	}

	fields := []string{"email", "password"}
	for _, f := range fields {
		if _, ok := body[f]; !ok {
			resp.Validation(c, "Missing field", f)
			return
		}
	}

	vals := map[string]string{}
	for _, f := range fields {
		s, ok := body[f].(string)
		if !ok {
			resp.Validation(c, "Incorrect field type: expected string", f)
			return
		}
		vals[f] = s
	}

	for _, f := range fields {
		if strings.TrimSpace(vals[f]) != vals[f] {
			resp.Validation(c, "Cannot start or end with whitespace", f)
			return
		}
	}

	email, password := vals["email"], vals["password"]
	if len(email) < 1 {
		resp.Validation(c, "email must be at least 1 characters", "email")
		return
	}
	if len(password) < 8 {
		resp.Validation(c, "password must be at least 8 characters", "password")
		return
	}
	// bcrypt 只看前 72 字节，超长在这里拒绝而不是靠静默截断
	if len(password) > utils.MaxPasswordLen {
		resp.Validation(c, fmt.Sprintf("password must be at most %d characters", utils.MaxPasswordLen), "password")
		return
	}

	u, err := h.auth.Signup(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			resp.Validation(c, "Email already taken", "email")
			return
		}
		fail(c, h.log, err)
		return
	}
	resp.Created(c, u.Repr())
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.auth.Me(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.OK(c, u.Repr())
}

// Update 改邮箱/密码。路径 id 必须等于请求体 userId，且只能改自己。
func (h *UserHandler) Update(c *gin.Context) {
	pathID := c.Param("userId")

	var body struct {
		UserID          string  `json:"userId"`
		CurrentPassword string  `json:"currentPassword"`
		Email           *string `json:"email"`
		ConfirmEmail    *string `json:"confirmEmail"`
		Password        *string `json:"password"`
		ConfirmPassword *string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, "Invalid JSON body")
		return
	}
	if pathID != body.UserID {
		resp.BadRequest(c, fmt.Sprintf(
			"Request path id (%s) and request body userId (%s) must match", pathID, body.UserID))
		return
	}
	if pathID != c.GetString(mdw.KeyUserID) {
		resp.Forbidden(c, "Forbidden")
		return
	}
	if body.Password != nil && len(*body.Password) > 0 {
		if len(*body.Password) < 8 || len(*body.Password) > utils.MaxPasswordLen {
			resp.Validation(c, fmt.Sprintf("password must be between 8 and %d characters", utils.MaxPasswordLen), "password")
			return
		}
	}

	u, token, err := h.auth.UpdateAccount(c.Request.Context(), pathID, service.UpdateAccountInput{
		CurrentPassword: body.CurrentPassword,
		Email:           body.Email,
		ConfirmEmail:    body.ConfirmEmail,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	msg := "Account updated"
	switch {
	case body.Email != nil && body.Password != nil:
		msg = "Email and password changed"
	case body.Password != nil:
		msg = "Password changed"
	case body.Email != nil:
		msg = "Email changed"
	}
	resp.Created(c, gin.H{"message": msg, "user": u.Repr(), "token": token})
}

// Delete 删号并级联删掉名下全部清单。
func (h *UserHandler) Delete(c *gin.Context) {
	pathID := c.Param("userId")
	if pathID != c.GetString(mdw.KeyUserID) {
		resp.Forbidden(c, "Forbidden")
		return
	}
	if err := h.wishlists.DeleteAccount(c.Request.Context(), pathID); err != nil {
		fail(c, h.log, err)
		return
	}
	resp.NoContent(c)
}
