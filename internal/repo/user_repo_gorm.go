package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"book-commons/internal/domain"
	"book-commons/internal/errs"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && isDupKey(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if err != nil && isDupKey(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{}).Error
}

// AttachWishlist 行锁下读改写，避免并发 append 互相覆盖丢更新。
func (r *UserRepo) AttachWishlist(ctx context.Context, userID, listID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		if err != nil {
			return err
		}
		if u.Wishlists.Contains(listID) {
			return nil
		}
		u.Wishlists = append(u.Wishlists, listID)
		return tx.Model(&domain.User{}).Where("id = ?", userID).
			Update("wishlists", u.Wishlists).Error
	})
}

func (r *UserRepo) DetachWishlist(ctx context.Context, userID, listID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !u.Wishlists.Contains(listID) {
			return nil
		}
		return tx.Model(&domain.User{}).Where("id = ?", userID).
			Update("wishlists", u.Wishlists.Without(listID)).Error
	})
}

// FindOwner 属主没有反向指针，只能按 wishlists 列的 JSON 文本扫。
func (r *UserRepo) FindOwner(ctx context.Context, listID string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		First(&u, "wishlists LIKE ?", `%"`+listID+`"%`).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// LIKE 只是粗筛，确认 id 真在列表里
	if !u.Wishlists.Contains(listID) {
		return nil, nil
	}
	return &u, nil
}

// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
