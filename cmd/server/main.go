package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gsep-planner/internal/blob"
	"gsep-planner/internal/blob/core"
	"gsep-planner/internal/blob/s3"
	"gsep-planner/internal/config"
	"gsep-planner/internal/logger"
	"gsep-planner/internal/metrics"
	"gsep-planner/internal/routes"

	"go.uber.org/zap"
)

func blobConfig(cfg *config.Config) blob.Config {
	return blob.Config{
		Driver: core.Driver(cfg.BlobDriver),
		FSRoot: cfg.BlobFSRoot,
		S3: s3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			Prefix:          cfg.S3Prefix,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			PathStyle:       cfg.S3PathStyle,
		},
	}
}

func main() {
	cfg := config.Load()
	logr := logger.New(cfg)
	defer logr.Sync()

	blobs, err := blob.Open(context.Background(), blobConfig(cfg))
	if err != nil {
		logr.Fatal("failed to open export storage", zap.Error(err), zap.String("driver", cfg.BlobDriver))
	}
	logr.Info("export storage ready", zap.String("driver", string(blobs.Driver())))

	r := routes.NewRouter(cfg, blobs, metrics.New(), logr)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server started", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Fatal("server forced to shutdown", zap.Error(err))
	}

	logr.Info("server exited gracefully")
}
