package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/njordlabs/njord/internal"
	"github.com/njordlabs/njord/internal/auth"
	"github.com/njordlabs/njord/internal/bootstrap"
	"github.com/njordlabs/njord/internal/email"
	"github.com/njordlabs/njord/internal/handler/api"
	"github.com/njordlabs/njord/internal/identity"
	"github.com/njordlabs/njord/internal/middleware"
	"github.com/njordlabs/njord/internal/repository"
	"github.com/njordlabs/njord/internal/router"
	"github.com/njordlabs/njord/internal/routes"
	"github.com/njordlabs/njord/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Initialize pgx connection pool for the application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize store and services
	store := repository.NewStore(pool)

	sender := email.NewSMTPSender(&email.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     int(cfg.Email.Port),
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})

	cartService := service.NewCartService(store)
	productService := service.NewProductService(store)
	userService := service.NewUserService(store, sender)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	resolver := identity.NewResolver(tokens)

	// Seed the initial admin account
	if err := bootstrap.EnsureAdminUser(ctx, store, &bootstrap.AdminConfig{
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
	}, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// Initialize middleware and router
	metrics := middleware.NewMetrics("njord")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.CORS(cfg.CORSOrigins),
		middleware.WithIdentity(resolver),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		Auth:     api.NewAuthHandler(userService, tokens, logger),
		Products: api.NewProductHandler(productService, logger),
		Cart:     api.NewCartHandler(cartService, logger),
		Users:    userService,
		Metrics:  metrics,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
