package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"imageserver/internal/config"
	"imageserver/internal/logging"
	"imageserver/internal/router"
	"imageserver/internal/storage"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	logger := log.With(logging.New(os.Stderr, cfg.LogLevel), "svc", "imageserver")

	if err := storage.EnsureDirs(cfg.UploadDirs()...); err != nil {
		level.Error(logger).Log("msg", "cannot prepare upload directories", "err", err)
		os.Exit(1)
	}

	r, err := router.New(router.Options{Config: cfg, Logger: logger})
	if err != nil {
		level.Error(logger).Log("msg", "cannot build router", "err", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	go func() {
		level.Info(logger).Log(
			"msg", "image server listening",
			"addr", server.Addr,
			"upload_dir", cfg.UploadDir,
			"chouffeur_dir", cfg.ChouffeurUploadDir,
			"cors_origins", fmt.Sprint(cfg.CORSOrigins),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	level.Info(logger).Log("msg", "shutting down", "reason", <-errs)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		level.Error(logger).Log("msg", "shutdown failed", "err", err)
	}
}
