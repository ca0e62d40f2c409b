package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clickship/internal/api"
	"clickship/internal/config"
	"clickship/internal/game"
	"clickship/internal/runner"
	"clickship/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	snapshots, err := store.Open(ctx, store.Options{
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
		Dir:         cfg.SnapshotDir,
	})
	if err != nil {
		logger.Error("snapshot store open failed", "err", err)
		os.Exit(1)
	}
	defer snapshots.Close()

	gameSvc := game.NewService(logger, nil, nil)
	snap := runner.NewSnapshotter(gameSvc, snapshots, cfg.SnapshotName, logger)
	restored, err := snap.Restore(ctx)
	if err != nil {
		logger.Error("snapshot restore failed", "err", err)
		os.Exit(1)
	}
	logger.Info("game state ready", "snapshot", cfg.SnapshotName, "restored", restored)

	if cfg.AutosaveOn {
		sched, err := snap.Schedule(cfg.Autosave)
		if err != nil {
			logger.Error("autosave init failed", "err", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	run := runner.New(gameSvc, logger, runner.Options{
		ProductionTick: cfg.ProductionTick,
		ShippingTick:   cfg.ShippingTick,
		ExpiryEvery:    cfg.ExpiryEvery,
	})
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = run.Run(ctx)
	}()

	server := api.New(logger, gameSvc, snap)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	failed := false
	logger.Info("clickship api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		failed = true
		stop()
	}

	<-runDone
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := snap.Save(saveCtx); err != nil {
		logger.Error("final snapshot failed", "err", err)
		failed = true
	} else {
		logger.Info("final snapshot saved", "snapshot", cfg.SnapshotName)
	}
	if failed {
		os.Exit(1)
	}
}
