package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ArieGerard/OdersApp/internal/api"
	"github.com/ArieGerard/OdersApp/internal/auth"
	"github.com/ArieGerard/OdersApp/internal/config"
	"github.com/ArieGerard/OdersApp/internal/database"
	"github.com/ArieGerard/OdersApp/internal/logger"
	"github.com/ArieGerard/OdersApp/internal/services"
	"github.com/ArieGerard/OdersApp/internal/store"
	"github.com/ArieGerard/OdersApp/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userStore := store.NewUserStore(db)
	orderStore := store.NewOrderStore(db)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	sessions := auth.NewSessions(cfg.SessionTTL)
	userService := services.NewUserService(userStore, hasher)
	orderService := services.NewOrderService(orderStore)

	// Make sure the bootstrap admin account exists
	if err := userService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure admin account")
	}

	views, err := web.NewTemplates()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Set up router
	router := api.NewRouter(userService, orderService, sessions, views)

	// Set up server
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
