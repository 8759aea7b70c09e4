package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"book-commons/internal/domain"
	"book-commons/internal/errs"
	"book-commons/internal/service"
	resp "book-commons/internal/transport/http/response"
)

type EbookHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewEbookHandler(catalog service.CatalogService, log *zap.Logger) *EbookHandler {
	return &EbookHandler{catalog: catalog, log: log}
}

func (h *EbookHandler) List(c *gin.Context) {
	es, err := h.catalog.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"ebooks": reprAll(es)})
}

func (h *EbookHandler) Get(c *gin.Context) {
	e, err := h.catalog.Get(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			resp.NotFound(c, "Ebook does not exist")
			return
		}
		fail(c, h.log, err)
		return
	}
	resp.OK(c, e.Repr())
}

// ByWishlist 解析某个清单引用的全部书目。
func (h *EbookHandler) ByWishlist(c *gin.Context) {
	es, err := h.catalog.ByWishlist(c.Request.Context(), c.Param("listId"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			resp.NotFound(c, "Wishlist does not exist")
			return
		}
		fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"ebooks": reprAll(es)})
}

// Create 去重入库：同一本书重复提交时返回已有记录而不是新建。
func (h *EbookHandler) Create(c *gin.Context) {
	var body struct {
		Title        string   `json:"title"`
		Author       string   `json:"author"`
		Preview      string   `json:"preview"`
		PublishDate  string   `json:"publishDate"`
		Languages    []string `json:"languages"`
		Pages        int      `json:"pages"`
		Formats      []string `json:"formats"`
		Location     string   `json:"location"`
		LocationIcon string   `json:"locationIcon"`
		LocationURL  string   `json:"locationUrl"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.Validation(c, "Invalid JSON body", "")
		return
	}
	if body.Title == "" {
		resp.Validation(c, "Missing field", "title")
		return
	}

	e := &domain.Ebook{
		Title:        body.Title,
		Author:       body.Author,
		Preview:      body.Preview,
		PublishDate:  body.PublishDate,
		Languages:    domain.StringList(body.Languages),
		Pages:        body.Pages,
		Formats:      domain.StringList(body.Formats),
		Location:     body.Location,
		LocationIcon: body.LocationIcon,
		LocationURL:  body.LocationURL,
	}
	out, existed, err := h.catalog.CreateOrExisting(c.Request.Context(), e)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if existed {
		resp.OK(c, gin.H{"message": "Book exists in database already", "ebook": out.Repr()})
		return
	}
	resp.Created(c, gin.H{"ebook": out.Repr()})
}

func (h *EbookHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("bookId")); err != nil {
		fail(c, h.log, err)
		return
	}
	resp.NoContent(c)
}

func reprAll(es []domain.Ebook) []domain.EbookRepr {
	out := make([]domain.EbookRepr, 0, len(es))
	for i := range es {
		out = append(out, es[i].Repr())
	}
	return out
}
