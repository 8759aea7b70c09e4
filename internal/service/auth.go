// Package service 承载鉴权、清单所有权和书目目录的应用逻辑。
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"book-commons/internal/core/auth"
	"book-commons/internal/domain"
	"book-commons/internal/errs"
	"book-commons/pkg/utils"
)

// FieldError 带字段定位的校验错误，handler 映射成 ValidationError 响应体。
type FieldError struct {
	Message  string
	Location string
}

func (e *FieldError) Error() string { return e.Message }

type AuthService interface {
	// Signup 创建新账号，邮箱重复返回 errs.ErrAlreadyExists。
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	// Login 校验凭证并签发 token。
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// Refresh 用仍有效 token 的身份换新 token（快照不回查）。
	Refresh(claims *auth.Claims) (string, error)
	// Me 取当前登录用户的实时记录。
	Me(ctx context.Context, uid string) (*domain.User, error)
	// UpdateAccount 改邮箱/密码，改完用新记录重签 token。
	UpdateAccount(ctx context.Context, uid string, in UpdateAccountInput) (*domain.User, string, error)
}

type UpdateAccountInput struct {
	CurrentPassword string
	Email           *string
	ConfirmEmail    *string
	Password        *string
	ConfirmPassword *string
}

type AuthServiceImpl struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, jwter: jwter, log: log}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if existing != nil {
		return nil, errs.ErrAlreadyExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		Wishlists:    domain.StringList{},
	}
	// 并发注册撞唯一索引时 repo 会报 ErrAlreadyExists
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.String("uid", u.ID))
	return u, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("find by email: %w", err)
	}
	// 查无此人和密码错对外同样表现，不泄露账号是否存在
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, errs.ErrUnauthorized
	}
	tok, err := s.issue(u)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

func (s *AuthServiceImpl) Refresh(claims *auth.Claims) (string, error) {
	return s.jwter.Refresh(claims)
}

func (s *AuthServiceImpl) Me(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (s *AuthServiceImpl) UpdateAccount(ctx context.Context, uid string, in UpdateAccountInput) (*domain.User, string, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", errs.ErrNotFound
	}
	if !utils.CheckPassword(in.CurrentPassword, u.PasswordHash) {
		return nil, "", &FieldError{Message: "Incorrect password", Location: "password"}
	}
	if in.Email != nil {
		if in.ConfirmEmail == nil || *in.Email != *in.ConfirmEmail {
			return nil, "", &FieldError{Message: "Email does not match", Location: "confirmEmail"}
		}
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Password != nil {
		if in.ConfirmPassword == nil || *in.Password != *in.ConfirmPassword {
			return nil, "", &FieldError{Message: "Password does not match", Location: "confirmPassword"}
		}
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, "", fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, "", err
	}
	// 改完身份重签 token，拿到的是更新后的快照
	tok, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthServiceImpl) issue(u *domain.User) (string, error) {
	tok, err := s.jwter.Issue(auth.Identity{UID: u.ID, Email: u.Email, Wishlists: u.Wishlists})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}
