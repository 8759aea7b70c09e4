package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-commons/internal/core/auth"
	"book-commons/internal/core/cache"
	"book-commons/internal/core/config"
	"book-commons/internal/core/database"
	"book-commons/internal/core/logger"
	"book-commons/internal/core/server"
	"book-commons/internal/domain"
	"book-commons/internal/repo"
	"book-commons/internal/service"
	"book-commons/internal/transport/http/handler"
	"book-commons/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Wishlist{}, &domain.Ebook{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.ExpiryDays) * 24 * time.Hour,
	}

	var cc *cache.Cache
	if cfg.Redis.Addr != "" {
		cc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("catalog cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	users := repo.NewUserRepo(db)
	wishlists := repo.NewWishlistRepo(db)
	ebooks := repo.NewEbookRepo(db)

	authSvc := service.NewAuthService(users, jwter, log)
	wishlistSvc := service.NewWishlistService(users, wishlists, log)
	catalogSvc := service.NewCatalogService(ebooks, wishlists, cc,
		time.Duration(cfg.Redis.CatalogTTLSec)*time.Second, log)

	r := router.NewAPIEngine(router.Deps{
		Log:          log,
		JWTer:        jwter,
		ClientOrigin: cfg.App.ClientOrigin,
		Auth:         handler.NewAuthHandler(authSvc, log),
		User:         handler.NewUserHandler(authSvc, wishlistSvc, log),
		Wishlist:     handler.NewWishlistHandler(wishlistSvc, log),
		Ebook:        handler.NewEbookHandler(catalogSvc, log),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	go func() {
		log.Info("api starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
