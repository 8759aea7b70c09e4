package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"book-commons/internal/core/auth"
	"book-commons/internal/errs"
	"book-commons/pkg/utils"
)

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "book-commons", TTL: 7 * 24 * time.Hour}
}

func TestSignup(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, testJWTer(), zap.NewNop())

	u, err := svc.Signup(context.Background(), "alice@example.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.Wishlists)

	// 明文不落库
	assert.NotEqual(t, "longenough1", u.PasswordHash)
	assert.True(t, utils.CheckPassword("longenough1", u.PasswordHash))

	// 对外表示绝不带散列
	repr := u.Repr()
	assert.Equal(t, u.Email, repr.Email)

	_, err = svc.Signup(context.Background(), "alice@example.com", "another-pass")
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	users := newFakeUsers()
	jwter := testJWTer()
	svc := NewAuthService(users, jwter, zap.NewNop())

	_, err := svc.Signup(context.Background(), "alice@example.com", "longenough1")
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		tok, u, err := svc.Login(context.Background(), "alice@example.com", "longenough1")
		require.NoError(t, err)
		require.NotNil(t, u)

		claims, err := jwter.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "alice@example.com", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice@example.com", "wrongwrong1")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "longenough1")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestRefresh(t *testing.T) {
	users := newFakeUsers()
	jwter := testJWTer()
	svc := NewAuthService(users, jwter, zap.NewNop())

	_, err := svc.Signup(context.Background(), "alice@example.com", "longenough1")
	require.NoError(t, err)
	tok, _, err := svc.Login(context.Background(), "alice@example.com", "longenough1")
	require.NoError(t, err)

	claims, err := jwter.Parse(tok)
	require.NoError(t, err)

	tok2, err := svc.Refresh(claims)
	require.NoError(t, err)

	claims2, err := jwter.Parse(tok2)
	require.NoError(t, err)
	assert.Equal(t, claims.UID, claims2.UID)
	assert.Equal(t, claims.Email, claims2.Email)
}

func TestUpdateAccount(t *testing.T) {
	users := newFakeUsers()
	jwter := testJWTer()
	svc := NewAuthService(users, jwter, zap.NewNop())

	u, err := svc.Signup(context.Background(), "alice@example.com", "longenough1")
	require.NoError(t, err)

	strp := func(s string) *string { return &s }

	t.Run("wrong current password", func(t *testing.T) {
		_, _, err := svc.UpdateAccount(context.Background(), u.ID, UpdateAccountInput{
			CurrentPassword: "not-the-password",
			Email:           strp("new@example.com"),
			ConfirmEmail:    strp("new@example.com"),
		})
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "password", fe.Location)
	})

	t.Run("email confirm mismatch", func(t *testing.T) {
		_, _, err := svc.UpdateAccount(context.Background(), u.ID, UpdateAccountInput{
			CurrentPassword: "longenough1",
			Email:           strp("new@example.com"),
			ConfirmEmail:    strp("other@example.com"),
		})
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "confirmEmail", fe.Location)
	})

	t.Run("password change", func(t *testing.T) {
		updated, tok, err := svc.UpdateAccount(context.Background(), u.ID, UpdateAccountInput{
			CurrentPassword: "longenough1",
			Password:        strp("evenlonger22"),
			ConfirmPassword: strp("evenlonger22"),
		})
		require.NoError(t, err)
		assert.True(t, utils.CheckPassword("evenlonger22", updated.PasswordHash))

		claims, err := jwter.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UID)

		_, _, err = svc.Login(context.Background(), "alice@example.com", "evenlonger22")
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.UpdateAccount(context.Background(), "missing", UpdateAccountInput{CurrentPassword: "x"})
		assert.True(t, errors.Is(err, errs.ErrNotFound))
	})
}
