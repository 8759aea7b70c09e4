package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"book-commons/internal/domain"
	"book-commons/internal/errs"
)

type WishlistRepo struct{ db *gorm.DB }

func NewWishlistRepo(db *gorm.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Create(ctx context.Context, w *domain.Wishlist) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WishlistRepo) FindByID(ctx context.Context, id string) (*domain.Wishlist, error) {
	var w domain.Wishlist
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &w, err
}

func (r *WishlistRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Wishlist, error) {
	if len(ids) == 0 {
		return []domain.Wishlist{}, nil
	}
	var ws []domain.Wishlist
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ws).Error
	return ws, err
}

func (r *WishlistRepo) Rename(ctx context.Context, id, title string) (*domain.Wishlist, error) {
	w, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errs.ErrNotFound
	}
	if err := r.db.WithContext(ctx).Model(&domain.Wishlist{}).Where("id = ?", id).
		Update("title", title).Error; err != nil {
		return nil, err
	}
	w.Title = title
	return w, nil
}

func (r *WishlistRepo) Delete(ctx context.Context, id string) error {
	// 幂等：RowsAffected == 0 不算错
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Wishlist{}).Error
}

// AddItem 行锁下 append-if-absent，两个并发加书不会互相覆盖。
func (r *WishlistRepo) AddItem(ctx context.Context, listID, bookID string) (*domain.Wishlist, bool, error) {
	var out domain.Wishlist
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w domain.Wishlist
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, "id = ?", listID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		if err != nil {
			return err
		}
		if w.Items.Contains(bookID) {
			out = w
			return nil
		}
		w.Items = append(w.Items, bookID)
		if err := tx.Model(&domain.Wishlist{}).Where("id = ?", listID).
			Update("items", w.Items).Error; err != nil {
			return err
		}
		out = w
		added = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, added, nil
}

func (r *WishlistRepo) RemoveItem(ctx context.Context, listID, bookID string) (*domain.Wishlist, error) {
	var out domain.Wishlist
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w domain.Wishlist
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, "id = ?", listID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !w.Items.Contains(bookID) {
			out = w
			return nil
		}
		w.Items = w.Items.Without(bookID)
		if err := tx.Model(&domain.Wishlist{}).Where("id = ?", listID).
			Update("items", w.Items).Error; err != nil {
			return err
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
