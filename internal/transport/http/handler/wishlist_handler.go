package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"book-commons/internal/domain"
	"book-commons/internal/errs"
	"book-commons/internal/service"
	mdw "book-commons/internal/transport/http/middleware"
	resp "book-commons/internal/transport/http/response"
)

type WishlistHandler struct {
	wishlists service.WishlistService
	log       *zap.Logger
}

func NewWishlistHandler(wishlists service.WishlistService, log *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, log: log}
}

// List 登录用户名下的全部清单。
func (h *WishlistHandler) List(c *gin.Context) {
	ws, err := h.wishlists.ListForUser(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	out := make([]domain.WishlistRepr, 0, len(ws))
	for i := range ws {
		out = append(out, ws[i].Repr())
	}
	resp.OK(c, gin.H{"wishlists": out})
}

func (h *WishlistHandler) Get(c *gin.Context) {
	w, err := h.wishlists.Get(c.Request.Context(), c.Param("listId"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			resp.NotFound(c, "Wishlist does not exist")
			return
		}
		fail(c, h.log, err)
		return
	}
	resp.OK(c, w.Repr())
}

// Create 建清单并挂到调用者名下。
func (h *WishlistHandler) Create(c *gin.Context) {
	var body struct {
		Title string   `json:"title"`
		Items []string `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Title == "" {
		resp.Validation(c, "Missing field", "title")
		return
	}

	w, u, err := h.wishlists.CreateForUser(c.Request.Context(), c.GetString(mdw.KeyUserID), body.Title, body.Items)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.Created(c, gin.H{"user": u.Repr(), "wishlist": w.Repr()})
}

func (h *WishlistHandler) Rename(c *gin.Context) {
	var body struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Title == "" {
		resp.Validation(c, "Missing field", "title")
		return
	}
	w, err := h.wishlists.Rename(c.Request.Context(), c.Param("listId"), body.Title)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			resp.NotFound(c, "Wishlist does not exist")
			return
		}
		fail(c, h.log, err)
		return
	}
	resp.Created(c, w.Repr())
}

// AddItem 幂等加书：第二次加同一本回 202，清单不动。
func (h *WishlistHandler) AddItem(c *gin.Context) {
	w, added, err := h.wishlists.AddItem(c.Request.Context(), c.Param("listId"), c.Param("bookId"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			resp.NotFound(c, "Wishlist does not exist")
			return
		}
		fail(c, h.log, err)
		return
	}
	if !added {
		c.JSON(http.StatusAccepted, gin.H{"message": "Item already exists in wishlist"})
		return
	}
	resp.Created(c, w.Repr())
}

// RemoveItem 摘书：书不在清单里也是成功。
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	w, err := h.wishlists.RemoveItem(c.Request.Context(), c.Param("listId"), c.Param("bookId"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			resp.NotFound(c, "Wishlist does not exist")
			return
		}
		fail(c, h.log, err)
		return
	}
	resp.Created(c, gin.H{"message": "Ebook removed from wishlist", "wishlist": w.Repr()})
}

// Delete 先从属主摘引用再删记录。
func (h *WishlistHandler) Delete(c *gin.Context) {
	err := h.wishlists.Delete(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("listId"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.NoContent(c)
}
