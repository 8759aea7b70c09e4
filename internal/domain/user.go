package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash string     `gorm:"size:191" json:"-"`
	Wishlists    StringList `gorm:"type:text" json:"wishlists"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

func (User) TableName() string { return "users" }

// UserRepr 对外表示，绝不带密码散列。
type UserRepr struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Wishlists []string `json:"wishlists"`
}

func (u *User) Repr() UserRepr {
	ws := u.Wishlists
	if ws == nil {
		ws = StringList{}
	}
	return UserRepr{ID: u.ID, Email: u.Email, Wishlists: ws}
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error

	// AttachWishlist 原子地把 listId 追加到用户的 wishlists（已存在则不动）。
	AttachWishlist(ctx context.Context, userID, listID string) error
	// DetachWishlist 原子地把 listId 从用户的 wishlists 里摘掉（不存在则无事发生）。
	DetachWishlist(ctx context.Context, userID, listID string) error
	// FindOwner 扫描持有 listId 的用户；没有属主（孤儿清单）时返回 nil, nil。
	FindOwner(ctx context.Context, listID string) (*User, error)
}
