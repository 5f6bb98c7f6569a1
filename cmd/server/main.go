package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/subcart/backend/internal/config"
	"github.com/subcart/backend/internal/httpserver"
	"github.com/subcart/backend/internal/metrics"
	"github.com/subcart/backend/internal/recurly"
	"github.com/subcart/backend/internal/relay"
)

func main() {
	// Best-effort: load environment variables from .env-style files in local
	// development. These calls are safe to ignore in production environments.
	_ = godotenv.Load(
		"../.env",
		".env",
	)

	log := logrus.WithField("component", "server")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if missing := cfg.MissingKeys(); len(missing) > 0 {
		log.Warnf("missing %s; billing calls will fail until configured", strings.Join(missing, ", "))
	}

	billing := recurly.NewClient(cfg.RecurlyAPIKey)
	subscriber := relay.New(billing)
	m := metrics.New()

	srv := httpserver.New(cfg, subscriber, m)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.Infof("relay starting on %s", cfg.ServerAddress)
	log.Infof("payment page: %s/payment.html", cfg.BackendOrigin)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server exited with error")
		os.Exit(1)
	}
}
