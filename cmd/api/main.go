package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-backend/config"
	_ "go-portfolio-backend/docs" // Important for Swagger
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"
	"go-portfolio-backend/pkg/whatsapp"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Contact-submission relay for the portfolio website.
// @host            localhost:3100
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	// 3. Setup Redis (optional throttle backend)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, throttling falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 4. Setup Email Dispatcher
	mailer := email.NewMailer(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email transport not fully configured - contact delivery will fail")
	}

	// 5. Setup WhatsApp Dispatcher. The session authenticates asynchronously;
	// notifications issued before it is ready are dropped.
	session, err := whatsapp.NewSession(context.Background(), cfg.WhatsAppStorePath)
	if err != nil {
		logger.Log.Warn("WhatsApp session unavailable, notifications disabled", "error", err)
	}
	dispatcher := whatsapp.NewDispatcher(session)
	if session != nil {
		if err := session.Start(context.Background(), dispatcher); err != nil {
			logger.Log.Warn("WhatsApp session failed to start, notifications disabled", "error", err)
		}
		defer session.Close()
	}

	// 6. Setup Relay
	contactUC := usecase.NewContactUsecase(mailer, dispatcher, cfg.WhatsAppNumber)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
