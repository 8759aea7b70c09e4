package domain

import (
	"context"
	"time"
)

type Wishlist struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Title     string     `gorm:"size:191" json:"title"`
	Items     StringList `gorm:"type:text" json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (Wishlist) TableName() string { return "wishlists" }

type WishlistRepr struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

func (w *Wishlist) Repr() WishlistRepr {
	items := w.Items
	if items == nil {
		items = StringList{}
	}
	return WishlistRepr{ID: w.ID, Title: w.Title, Items: items}
}

type WishlistRepository interface {
	Create(ctx context.Context, w *Wishlist) error
	FindByID(ctx context.Context, id string) (*Wishlist, error)
	FindByIDs(ctx context.Context, ids []string) ([]Wishlist, error)
	Rename(ctx context.Context, id, title string) (*Wishlist, error)
	// Delete 幂等：清单不存在也算成功。
	Delete(ctx context.Context, id string) error

	// AddItem 原子追加条目。已存在时 added=false 且清单不动。
	AddItem(ctx context.Context, listID, bookID string) (list *Wishlist, added bool, err error)
	// RemoveItem 原子摘除条目，条目不在清单里时为 no-op。
	RemoveItem(ctx context.Context, listID, bookID string) (*Wishlist, error)
}
