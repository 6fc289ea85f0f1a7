package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smacpher/frarold/pkg/config"
	"github.com/smacpher/frarold/pkg/webhook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	l := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     cfg.LogLevel,
	}))

	menu, err := webhook.NewMenuClient(&cfg.Webhook)
	if err != nil {
		log.Fatalf("failed to set up the menu client: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Webhook.ListenAddr,
		Handler:           webhook.New(menu, l).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error("Shutdown failed", "error", err)
		}
	}()

	l.Info("Listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	l.Info("Server stopped")
}
