package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PeerLens/internal/collector"
	"PeerLens/internal/compare"
	"PeerLens/internal/config"
	"PeerLens/internal/model"
	"PeerLens/internal/palette"
	"PeerLens/internal/scheduler"
	"PeerLens/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PeerLens starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewStocksAPIFetcher(
		cfg.API.BaseURL, cfg.API.APIKey, cfg.Proxy,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
	)
	log.Printf("[INFO] data source: %s (%s)", fetcher.Name(), cfg.API.BaseURL)

	// Init color store; read/write failures never block the dashboard.
	var store palette.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := palette.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite color store failed, using memory: %v", err)
			store = palette.NewMemoryStore()
		} else {
			store = ss
			defer ss.Close()
		}
	} else {
		store = palette.NewMemoryStore()
	}
	colors := palette.NewAllocator(store)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init compare view and restore the configured descriptor.
	view := compare.NewView(fetcher, colors)
	desc := compare.NormalizeDescriptor(model.Descriptor{
		Tickers:      cfg.View.Tickers,
		Range:        model.Range(cfg.View.Range),
		ClipOutliers: cfg.View.ClipPE,
	})
	if len(desc.Tickers) > 0 {
		if snap, err := view.Apply(ctx, desc); err == nil && snap.Error != "" {
			log.Printf("[WARN] initial fetch: %s", snap.Error)
		}
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, view)
	if err := sched.Register(cfg.Refresh.Cron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Serve the comparison API.
	srv := server.New(cfg.Server.ListenAddr, view)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Println("[INFO] PeerLens is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[ERROR] http server: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] server shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] PeerLens stopped")
}
