package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-email-otp/internal/config"
	"github.com/go-email-otp/internal/infrastructure/memory"
	"github.com/go-email-otp/internal/infrastructure/smtp"
	"github.com/go-email-otp/internal/pkg/logger"
	transporthttp "github.com/go-email-otp/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(log)
	if envErr != nil {
		log.Info("no .env file found, reading from environment")
	}
	if cfg.GmailUser == "" || cfg.GmailAppPassword == "" {
		log.Warn("GMAIL_USER or GMAIL_APP_PASSWORD not set; verification emails will fail")
	}

	deps := &transporthttp.Deps{
		CodeStore: memory.NewCodeStore(),
		Mailer:    smtp.NewMailer(cfg),
		Logger:    log,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// WriteTimeout stays unset: a send-code request waits for the SMTP exchange.
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.AppPort),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("server live", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
