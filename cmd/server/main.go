package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docrelay/docrelay/internal/api"
	"github.com/docrelay/docrelay/internal/backend"
	"github.com/docrelay/docrelay/internal/cache"
	"github.com/docrelay/docrelay/internal/config"
	"github.com/docrelay/docrelay/internal/convert"
	"github.com/docrelay/docrelay/internal/retrieve"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var sites []config.SiteRule
	if cfg.SitesFile != "" {
		var err error
		sites, err = config.LoadSites(cfg.SitesFile)
		if err != nil {
			log.Error("loading site rules", "file", cfg.SitesFile, "error", err)
			os.Exit(1)
		}
		log.Info("loaded site rules", "count", len(sites))
	}

	// Initialize the cache: sqlite for persistence, memory tier in front.
	sqlite, err := cache.OpenSQLite(cfg.CachePath)
	if err != nil {
		log.Error("opening cache", "path", cfg.CachePath, "error", err)
		os.Exit(1)
	}
	store := cache.NewTiered(cache.NewMemory(), sqlite, 0)

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				if n, err := sqlite.PurgeExpired(purgeCtx); err != nil {
					log.Warn("cache purge failed", "error", err)
				} else if n > 0 {
					log.Debug("purged expired cache entries", "count", n)
				}
			}
		}
	}()

	// Initialize the backend client.
	throttle := backend.NewThrottle(cfg.BackendRPS)
	client := backend.NewClient(cfg.BackendURL, cfg.BackendAPIKey, throttle)

	svc := retrieve.NewService(client, store, convert.New(sites), log, retrieve.Options{
		DefaultMaxTokens: cfg.DefaultMaxTokens,
		MaxTokensCeiling: cfg.MaxTokensCeiling,
		DefaultPageSize:  cfg.DefaultPageSize,
		MaxPageSize:      cfg.MaxPageSize,
		CacheTTL:         cfg.CacheTTL,
	})

	srv := api.NewServer(svc, client.Stats(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		stopPurge()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
		store.Close()
	}()

	log.Info("starting docrelay", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
