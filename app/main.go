package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockwall/portfolio-pulse/app/api"
	"github.com/blockwall/portfolio-pulse/app/archive"
	"github.com/blockwall/portfolio-pulse/app/cfg"
	"github.com/blockwall/portfolio-pulse/app/collector"
	"github.com/blockwall/portfolio-pulse/app/registry"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting Portfolio Pulse", "version", appCfg.Version)

	// Registry load is the only fatal failure: without it there is
	// nothing to collect or serve.
	reg := registry.NewRegistry(appCfg.CompaniesDir)
	if err := reg.Run(); err != nil {
		slog.Error("Failed to load company registry", "error", err)
		os.Exit(1)
	}
	slog.Info("Company registry loaded", "companies", reg.GetCompanyCount())

	runs := openArchive(appCfg.ArchiveDB)

	if appCfg.Serve {
		runServer(reg, runs)
		return
	}

	coll := collector.NewCollector(reg, runs)

	if appCfg.Reindex {
		if err := coll.Reindex(); err != nil {
			slog.Error("Reindex failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := coll.Run(ctx); err != nil {
		slog.Error("Collection failed", "error", err)
		os.Exit(1)
	}
}

// openArchive connects to the run-history database. The archive is
// supplemental: any failure here degrades to running without it.
func openArchive(path string) *archive.RunRepository {
	db, err := archive.NewDB(path)
	if err != nil {
		slog.Warn("Run history unavailable", "error", err)
		return nil
	}

	version, dirty, err := archive.RunMigrations(db)
	if err != nil {
		slog.Warn("Run history migrations failed", "error", err)
		db.Close()
		return nil
	}
	slog.Debug("Run history ready", "schema_version", version, "dirty", dirty)

	return archive.NewRunRepository(db)
}

func runServer(reg *registry.Registry, runs *archive.RunRepository) {
	appCfg := cfg.Get()

	handler := api.NewHandler(reg, runs)
	server := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		slog.Error("HTTP server failed", "error", err)
		os.Exit(1)
	case sig := <-sigChan:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Failed to shut down cleanly", "error", err)
		os.Exit(1)
	}
}
