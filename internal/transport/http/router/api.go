package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"book-commons/internal/core/auth"
	"book-commons/internal/transport/http/handler"
	mdw "book-commons/internal/transport/http/middleware"
)

type Deps struct {
	Log          *zap.Logger
	JWTer        *auth.JWTer
	ClientOrigin string

	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Wishlist *handler.WishlistHandler
	Ebook    *handler.EbookHandler
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		corsFor(d.ClientOrigin),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := mdw.AuthJWT(d.JWTer)

	authGrp := r.Group("/auth")
	{
		authGrp.POST("/login", d.Auth.Login)
		authGrp.POST("/refresh", requireAuth, d.Auth.Refresh)
	}

	users := r.Group("/users")
	{
		users.POST("", d.User.Signup)
		users.GET("/me", requireAuth, d.User.Me)
		users.PUT("/:userId", requireAuth, d.User.Update)
		users.DELETE("/:userId", requireAuth, d.User.Delete)
	}

	wishlists := r.Group("/wishlists")
	{
		wishlists.GET("", requireAuth, d.Wishlist.List)
		wishlists.POST("", requireAuth, d.Wishlist.Create)
		wishlists.GET("/:listId", d.Wishlist.Get)
		wishlists.PUT("/:listId", d.Wishlist.Rename)
		wishlists.PUT("/:listId/add/:bookId", d.Wishlist.AddItem)
		wishlists.PUT("/:listId/delete/:bookId", d.Wishlist.RemoveItem)
		wishlists.DELETE("/:listId", requireAuth, d.Wishlist.Delete)
	}

	ebooks := r.Group("/ebooks")
	{
		ebooks.GET("", d.Ebook.List)
		ebooks.GET("/wishlist/:listId", d.Ebook.ByWishlist)
		ebooks.GET("/:bookId", d.Ebook.Get)
		ebooks.POST("", d.Ebook.Create)
		ebooks.DELETE("/:bookId", d.Ebook.Delete)
	}

	return r
}

func corsFor(origin string) gin.HandlerFunc {
	if origin == "" || origin == "*" {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = []string{origin}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
