// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/retail-ops/internal/api"
	"github.com/andresuchdata/retail-ops/internal/cache"
	"github.com/andresuchdata/retail-ops/internal/config"
	"github.com/andresuchdata/retail-ops/internal/service"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
	"github.com/andresuchdata/retail-ops/internal/storage"
	"github.com/andresuchdata/retail-ops/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	if cfg.Storage.Enabled {
		syncFixtures(ctx, cfg)
	}

	var source snapshot.Source
	if cfg.Data.BaseURL != "" {
		source = snapshot.NewHTTPSource(cfg.Data.BaseURL)
	} else {
		source = snapshot.DirSource{Dir: cfg.Data.Dir}
	}

	rmc, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, serving uncached")
		rmc = cache.Noop()
	}

	svc := service.New(ctx, source, cfg.Data.Today, rmc)

	router := api.NewRouter(svc, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// syncFixtures pulls the fixture files from the configured bucket into
// the local data dir before the first load. Failures are non-fatal; the
// loader degrades each missing dataset to an empty slice.
func syncFixtures(ctx context.Context, cfg *config.Config) {
	client, err := storage.NewS3Client(storage.S3Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Log.Warn().Err(err).Msg("fixture storage unavailable, using local files")
		return
	}
	n, err := storage.SyncFixtures(ctx, client, cfg.Storage.Prefix, cfg.Data.Dir)
	if err != nil {
		logger.Log.Warn().Err(err).Int("synced", n).Msg("fixture sync incomplete, using local files")
		return
	}
	logger.Log.Info().Int("synced", n).Str("dir", cfg.Data.Dir).Msg("fixtures synced from storage")
}
