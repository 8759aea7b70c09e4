package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"book-commons/internal/domain"
	"book-commons/internal/errs"
)

func seedUser(users *fakeUsers, id, email string) {
	users.byID[id] = &domain.User{ID: id, Email: email, Wishlists: domain.StringList{}}
}

func TestCreateForUser(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")

	w, u, err := svc.CreateForUser(context.Background(), "u1", "Reading", nil)
	require.NoError(t, err)
	assert.Equal(t, "Reading", w.Title)
	assert.Empty(t, w.Items)
	assert.Contains(t, []string(u.Wishlists), w.ID)

	// 属主的引用和清单记录保持一致
	stored, err := svc.Get(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, stored.ID)
}

func TestCreateForUserAttachFails(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")
	users.attachErr = errors.New("store unavailable")

	_, _, err := svc.CreateForUser(context.Background(), "u1", "Reading", nil)
	require.Error(t, err)

	// 挂接失败报错给调用方；落库的清单成为孤儿（无属主），可回收
	assert.Len(t, wishlists.byID, 1)
	for id := range wishlists.byID {
		owner, err := users.FindOwner(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, owner)
	}
}

func TestAttachIsDuplicateFree(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")

	w, _, err := svc.CreateForUser(context.Background(), "u1", "Reading", nil)
	require.NoError(t, err)

	// 重复挂同一个 id 不会出现两份引用
	require.NoError(t, users.AttachWishlist(context.Background(), "u1", w.ID))
	u, _ := users.FindByID(context.Background(), "u1")
	count := 0
	for _, id := range u.Wishlists {
		if id == w.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddItemIdempotent(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")
	w, _, err := svc.CreateForUser(context.Background(), "u1", "Reading", nil)
	require.NoError(t, err)

	got, added, err := svc.AddItem(context.Background(), w.ID, "e1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"e1"}, []string(got.Items))

	got, added, err = svc.AddItem(context.Background(), w.ID, "e1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"e1"}, []string(got.Items))
}

func TestRemoveItem(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")
	w, _, err := svc.CreateForUser(context.Background(), "u1", "Reading", []string{"e1", "e2"})
	require.NoError(t, err)

	got, err := svc.RemoveItem(context.Background(), w.ID, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"e2"}, []string(got.Items))

	// 不在清单里的 id：no-op 成功
	got, err = svc.RemoveItem(context.Background(), w.ID, "e9")
	require.NoError(t, err)
	assert.Equal(t, []string{"e2"}, []string(got.Items))
}

func TestDeleteDetachesFromOwner(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")
	w, _, err := svc.CreateForUser(context.Background(), "u1", "Reading", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "u1", w.ID))

	// 记录没了，属主列表里的引用也没了：不留悬空 id
	_, err = svc.Get(context.Background(), w.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	u, _ := users.FindByID(context.Background(), "u1")
	assert.NotContains(t, []string(u.Wishlists), w.ID)
}

func TestDeleteByNonOwner(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")
	seedUser(users, "u2", "bob@example.com")
	w, _, err := svc.CreateForUser(context.Background(), "u1", "Reading", nil)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "u2", w.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	// 清单原封不动
	_, err = svc.Get(context.Background(), w.ID)
	assert.NoError(t, err)
}

func TestDeleteOrphan(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())

	wishlists.byID["orphan"] = &domain.Wishlist{ID: "orphan", Title: "lost"}
	require.NoError(t, svc.Delete(context.Background(), "anyone", "orphan"))
	_, err := svc.Get(context.Background(), "orphan")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		w, _, err := svc.CreateForUser(context.Background(), "u1", title, nil)
		require.NoError(t, err)
		ids = append(ids, w.ID)
	}

	require.NoError(t, svc.DeleteAccount(context.Background(), "u1"))

	for _, id := range ids {
		_, err := svc.Get(context.Background(), id)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	}
	u, err := users.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestDeleteAccountPartialFailureIsRetryable(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")

	w1, _, err := svc.CreateForUser(context.Background(), "u1", "a", nil)
	require.NoError(t, err)
	w2, _, err := svc.CreateForUser(context.Background(), "u1", "b", nil)
	require.NoError(t, err)

	// 第二个清单删不动：整体报错，但第一个已经删掉
	wishlists.deleteErr[w2.ID] = errors.New("store unavailable")
	err = svc.DeleteAccount(context.Background(), "u1")
	require.Error(t, err)

	// 故障恢复后重试收尾：已删的清单再删是 no-op
	delete(wishlists.deleteErr, w2.ID)
	require.NoError(t, svc.DeleteAccount(context.Background(), "u1"))

	for _, id := range []string{w1.ID, w2.ID} {
		_, err := svc.Get(context.Background(), id)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	}
	u, _ := users.FindByID(context.Background(), "u1")
	assert.Nil(t, u)
}

func TestListForUser(t *testing.T) {
	users := newFakeUsers()
	wishlists := newFakeWishlists()
	svc := NewWishlistService(users, wishlists, zap.NewNop())
	seedUser(users, "u1", "alice@example.com")
	seedUser(users, "u2", "bob@example.com")

	w1, _, err := svc.CreateForUser(context.Background(), "u1", "mine", nil)
	require.NoError(t, err)
	_, _, err = svc.CreateForUser(context.Background(), "u2", "theirs", nil)
	require.NoError(t, err)

	got, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, w1.ID, got[0].ID)
}
