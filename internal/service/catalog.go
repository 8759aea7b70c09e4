package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"book-commons/internal/core/cache"
	"book-commons/internal/domain"
	"book-commons/internal/errs"
	"book-commons/pkg/utils"
)

const (
	catalogListKey  = "ebooks:all"
	catalogEntryKey = "ebooks:"
)

type CatalogService interface {
	// CreateOrExisting 去重入库：title + formats + location 全同视作同一本书，
	// 命中时返回已有记录，existed=true。
	CreateOrExisting(ctx context.Context, e *domain.Ebook) (out *domain.Ebook, existed bool, err error)
	List(ctx context.Context) ([]domain.Ebook, error)
	Get(ctx context.Context, id string) (*domain.Ebook, error)
	// ByWishlist 解析清单条目对应的书目记录。
	ByWishlist(ctx context.Context, listID string) ([]domain.Ebook, error)
	Delete(ctx context.Context, id string) error
}

type CatalogServiceImpl struct {
	ebooks    domain.EbookRepository
	wishlists domain.WishlistRepository
	cache     *cache.Cache // 可为 nil（未配置 redis）
	ttl       time.Duration
	log       *zap.Logger
}

func NewCatalogService(ebooks domain.EbookRepository, wishlists domain.WishlistRepository, c *cache.Cache, ttl time.Duration, log *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{ebooks: ebooks, wishlists: wishlists, cache: c, ttl: ttl, log: log}
}

func (s *CatalogServiceImpl) CreateOrExisting(ctx context.Context, e *domain.Ebook) (*domain.Ebook, bool, error) {
	dup, err := s.ebooks.FindDuplicate(ctx, e.Title, e.Formats, e.Location)
	if err != nil {
		return nil, false, fmt.Errorf("dedup lookup: %w", err)
	}
	if dup != nil {
		return dup, true, nil
	}
	e.ID = utils.NewID()
	if e.Languages == nil {
		e.Languages = domain.StringList{}
	}
	if e.Formats == nil {
		e.Formats = domain.StringList{}
	}
	if err := s.ebooks.Create(ctx, e); err != nil {
		return nil, false, fmt.Errorf("create ebook: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, catalogListKey)
	}
	s.log.Info("ebook created", zap.String("id", e.ID), zap.String("title", e.Title))
	return e, false, nil
}

func (s *CatalogServiceImpl) List(ctx context.Context) ([]domain.Ebook, error) {
	if s.cache == nil {
		return s.ebooks.List(ctx)
	}
	return cache.GetOrLoadJSON[[]domain.Ebook](s.cache, ctx, catalogListKey, s.ttl,
		func(ctx context.Context) ([]domain.Ebook, error) {
			return s.ebooks.List(ctx)
		})
}

func (s *CatalogServiceImpl) Get(ctx context.Context, id string) (*domain.Ebook, error) {
	load := func(ctx context.Context) (*domain.Ebook, error) {
		e, err := s.ebooks.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, errs.ErrNotFound
		}
		return e, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON[*domain.Ebook](s.cache, ctx, catalogEntryKey+id, s.ttl, load)
}

func (s *CatalogServiceImpl) ByWishlist(ctx context.Context, listID string) ([]domain.Ebook, error) {
	w, err := s.wishlists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errs.ErrNotFound
	}
	return s.ebooks.FindByIDs(ctx, w.Items)
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.ebooks.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, catalogListKey, catalogEntryKey+id)
	}
	return nil
}
