package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"book-commons/internal/domain"
	"book-commons/internal/errs"
	"book-commons/pkg/utils"
)

// WishlistService 是用户 ↔ 清单一致性的唯一写入口。
// 两张表之间没有外键也没有跨文档事务，所有跨实体改动都走这里，
// 多步操作按"先摘引用、再删记录"的顺序设计，半途失败留下的是可重试状态。
type WishlistService interface {
	// CreateForUser 先建清单，再把 id 挂到属主。挂接失败时清单成为孤儿，
	// 对读路径无害、可事后回收，但要把错误报给调用方以便重试。
	CreateForUser(ctx context.Context, userID, title string, items []string) (*domain.Wishlist, *domain.User, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Wishlist, error)
	Get(ctx context.Context, listID string) (*domain.Wishlist, error)
	Rename(ctx context.Context, listID, title string) (*domain.Wishlist, error)
	// AddItem 幂等：已在清单里时 added=false，清单原样返回。
	AddItem(ctx context.Context, listID, bookID string) (list *domain.Wishlist, added bool, err error)
	// RemoveItem 摘除条目，条目本就不在时是 no-op 成功。
	RemoveItem(ctx context.Context, listID, bookID string) (*domain.Wishlist, error)
	// Delete 先从属主的列表摘掉 id，再删清单记录。
	// callerID 不是属主时拒绝；孤儿清单（无属主）直接删。
	Delete(ctx context.Context, callerID, listID string) error
	// DeleteAccount 级联：逐个删掉名下清单，最后删用户。每步幂等，可整体重试。
	DeleteAccount(ctx context.Context, userID string) error
}

type WishlistServiceImpl struct {
	users     domain.UserRepository
	wishlists domain.WishlistRepository
	log       *zap.Logger
}

func NewWishlistService(users domain.UserRepository, wishlists domain.WishlistRepository, log *zap.Logger) *WishlistServiceImpl {
	return &WishlistServiceImpl{users: users, wishlists: wishlists, log: log}
}

func (s *WishlistServiceImpl) CreateForUser(ctx context.Context, userID, title string, items []string) (*domain.Wishlist, *domain.User, error) {
	w := &domain.Wishlist{
		ID:    utils.NewID(),
		Title: title,
		Items: domain.StringList(items),
	}
	if w.Items == nil {
		w.Items = domain.StringList{}
	}
	if err := s.wishlists.Create(ctx, w); err != nil {
		return nil, nil, fmt.Errorf("create wishlist: %w", err)
	}
	if err := s.users.AttachWishlist(ctx, userID, w.ID); err != nil {
		// 清单已落库但没挂上属主：报错让上游重试，孤儿留待回收
		s.log.Warn("wishlist orphaned: attach failed",
			zap.String("list_id", w.ID), zap.String("uid", userID), zap.Error(err))
		return nil, nil, fmt.Errorf("attach wishlist: %w", err)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return w, u, nil
}

func (s *WishlistServiceImpl) ListForUser(ctx context.Context, userID string) ([]domain.Wishlist, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.ErrNotFound
	}
	return s.wishlists.FindByIDs(ctx, u.Wishlists)
}

func (s *WishlistServiceImpl) Get(ctx context.Context, listID string) (*domain.Wishlist, error) {
	w, err := s.wishlists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errs.ErrNotFound
	}
	return w, nil
}

func (s *WishlistServiceImpl) Rename(ctx context.Context, listID, title string) (*domain.Wishlist, error) {
	return s.wishlists.Rename(ctx, listID, title)
}

func (s *WishlistServiceImpl) AddItem(ctx context.Context, listID, bookID string) (*domain.Wishlist, bool, error) {
	return s.wishlists.AddItem(ctx, listID, bookID)
}

func (s *WishlistServiceImpl) RemoveItem(ctx context.Context, listID, bookID string) (*domain.Wishlist, error) {
	return s.wishlists.RemoveItem(ctx, listID, bookID)
}

func (s *WishlistServiceImpl) Delete(ctx context.Context, callerID, listID string) error {
	// 属主没有反向指针，按弱引用扫出来
	owner, err := s.users.FindOwner(ctx, listID)
	if err != nil {
		return fmt.Errorf("find owner: %w", err)
	}
	if owner != nil {
		if owner.ID != callerID {
			return errs.ErrForbidden
		}
		// 先摘引用再删记录：摘失败时清单还在，不会留悬空 id
		if err := s.users.DetachWishlist(ctx, owner.ID, listID); err != nil {
			return fmt.Errorf("detach wishlist: %w", err)
		}
	}
	if err := s.wishlists.Delete(ctx, listID); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}
	s.log.Info("wishlist removed", zap.String("list_id", listID))
	return nil
}

func (s *WishlistServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return errs.ErrNotFound
	}
	for _, listID := range u.Wishlists {
		if err := s.wishlists.Delete(ctx, listID); err != nil {
			// 半删状态交给重试：已删的清单再删是 no-op
			return fmt.Errorf("cascade delete wishlist %s: %w", listID, err)
		}
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info("account deleted", zap.String("uid", userID), zap.Int("wishlists", len(u.Wishlists)))
	return nil
}
