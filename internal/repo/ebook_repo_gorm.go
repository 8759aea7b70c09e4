package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"book-commons/internal/domain"
)

type EbookRepo struct{ db *gorm.DB }

func NewEbookRepo(db *gorm.DB) *EbookRepo { return &EbookRepo{db: db} }

func (r *EbookRepo) Create(ctx context.Context, e *domain.Ebook) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EbookRepo) FindByID(ctx context.Context, id string) (*domain.Ebook, error) {
	var e domain.Ebook
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *EbookRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Ebook, error) {
	if len(ids) == 0 {
		return []domain.Ebook{}, nil
	}
	var es []domain.Ebook
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&es).Error
	return es, err
}

func (r *EbookRepo) List(ctx context.Context) ([]domain.Ebook, error) {
	var es []domain.Ebook
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&es).Error
	return es, err
}

// FindDuplicate 按 title + formats + location 判同一本书。
// formats 列存的是 JSON 文本，序列化后直接等值比较。
func (r *EbookRepo) FindDuplicate(ctx context.Context, title string, formats domain.StringList, location string) (*domain.Ebook, error) {
	enc, err := formats.Value()
	if err != nil {
		return nil, err
	}
	var e domain.Ebook
	err = r.db.WithContext(ctx).
		First(&e, "title = ? AND formats = ? AND location = ?", title, enc, location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *EbookRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Ebook{}).Error
}
