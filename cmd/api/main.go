package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookswap/internal/core/auth"
	"bookswap/internal/core/cache"
	"bookswap/internal/core/config"
	"bookswap/internal/core/database"
	"bookswap/internal/core/logger"
	"bookswap/internal/core/server"
	"bookswap/internal/domain"
	"bookswap/internal/repo"
	"bookswap/internal/service"
	"bookswap/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Book{},
			&domain.BookListing{},
			&domain.BookImage{},
			&domain.Rating{},
			&domain.SwapRequest{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	deps := buildDeps(cfg, log, db)

	// Seed the admin account so the back office is reachable on a fresh DB.
	if cfg.Bootstrap.Password != "" {
		if err := deps.Users.EnsureAdmin(cfg.Bootstrap.Username, cfg.Bootstrap.Password, cfg.Bootstrap.Email); err != nil {
			log.Fatal("admin bootstrap failed", zap.Error(err))
		}
	}

	r := router.NewAPIEngine(log, deps)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.Build(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.New(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
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

func buildDeps(cfg *config.Config, log *zap.Logger, db *gorm.DB) *router.Deps {
	users := repo.NewUserRepo(db)
	books := repo.NewBookRepo(db)
	listings := repo.NewListingRepo(db)
	images := repo.NewImageRepo(db)
	ratings := repo.NewRatingRepo(db)
	swaps := repo.NewSwapRepo(db)

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	store := &service.DiskStore{Root: cfg.Upload.Dir}

	bookSvc := service.NewBookService(books)
	return &router.Deps{
		Log: log,
		Cfg: cfg,
		JWT: &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		},
		Users:    service.NewUserService(users, log),
		Books:    bookSvc,
		Listings: service.NewListingService(listings, images, bookSvc, store, log),
		Ratings:  service.NewRatingService(ratings, books, c),
		Swaps:    service.NewSwapService(swaps, listings, users, log, cfg.Swap.OwnerOnlyClose),
		Storage:  service.NewStorageService(images, listings, store, log, cfg.Upload.MaxImages, cfg.Upload.MaxSizeMB),
	}
}
