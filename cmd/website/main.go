package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/config"
	"github.com/csheth/buildvision/internal/logging"
	"github.com/csheth/buildvision/internal/site"
)

func main() {
	port := flag.String("port", "", "listen port (default $WEBSITE_PORT)")
	endpoint := flag.String("endpoint", "", "Atlas chat endpoint (default $ATLAS_ENDPOINT)")
	token := flag.String("token", "", "Atlas embed token (default $ATLAS_EMBED_TOKEN)")
	flag.Parse()

	cfg, envLoaded, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	cfg.Override(config.Overrides{Endpoint: *endpoint, Token: *token, Port: *port})

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Path:   cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging error:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if !envLoaded {
		logger.Debug("no .env file loaded")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	client, err := atlas.New(atlas.Config{
		Endpoint:   cfg.Atlas.Endpoint,
		Token:      cfg.Atlas.Token,
		HTTPClient: &http.Client{Timeout: cfg.Atlas.Timeout},
	})
	if err != nil {
		logger.Fatal("atlas client", zap.Error(err))
	}

	srv := &http.Server{
		Addr: cfg.Website.Port,
		Handler: site.New(site.Options{
			Client:      client,
			SessionTTL:  cfg.Website.SessionTTL,
			MaxSessions: cfg.Website.MaxSessions,
			Logger:      logger,
		}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("website listening", zap.String("addr", "http://localhost"+cfg.Website.Port), zap.String("atlas", cfg.Atlas.Endpoint))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Website.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
