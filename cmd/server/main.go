package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/invenra/invenra/application/usecase"
	"github.com/invenra/invenra/infrastructure/config"
	"github.com/invenra/invenra/infrastructure/http/handler"
	"github.com/invenra/invenra/infrastructure/http/middleware"
	"github.com/invenra/invenra/infrastructure/http/server"
	"github.com/invenra/invenra/infrastructure/persistence/postgres"
	"github.com/invenra/invenra/infrastructure/service/jwt"
	"github.com/invenra/invenra/infrastructure/service/logger"
	"github.com/invenra/invenra/infrastructure/service/password"
	"github.com/invenra/invenra/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "invenra",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.Config{
		Enabled:       cfg.RateLimitEnabled,
		RedisURL:      cfg.RedisURL,
		IPAttempts:    cfg.RateLimitIPAttempts,
		IPWindow:      cfg.RateLimitIPWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, logrus.New())
	if err != nil {
		log.Fatalf("Failed to initialize rate limit service: %v", err)
	}

	tokenService, err := jwt.NewJWTService(jwt.Options{
		Secret:         cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		Audience:       cfg.JWTAudience,
		AccessTokenTTL: cfg.AccessTokenTTL,
	})
	if err != nil {
		// Token issuance cannot work without signing config; refuse to start.
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)

	authUseCase := usecase.NewAuthUseCase(userRepo, tokenService, passwordService, structuredLogger, cfg.RefreshTokenTTL)
	productUseCase := usecase.NewProductUseCase(productRepo, structuredLogger)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo, structuredLogger)
	supplierUseCase := usecase.NewSupplierUseCase(supplierRepo, structuredLogger)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(
		rateLimitService,
		structuredLogger,
		cfg.RateLimitIPAttempts,
		cfg.RateLimitIPWindow,
		cfg.RateLimitBlockDuration,
	)

	middleware.RegisterMetrics()

	srv := server.New(cfg, server.Handlers{
		Auth:     handler.NewAuthHandler(authUseCase, authMiddleware),
		Product:  handler.NewProductHandler(productUseCase, authMiddleware),
		Customer: handler.NewCustomerHandler(customerUseCase, authMiddleware),
		Supplier: handler.NewSupplierHandler(supplierUseCase, authMiddleware),
	}, rateLimitMiddleware)

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"addr": srv.Addr(),
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
