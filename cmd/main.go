package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/memolish/memolish-server/internal/api/http/router"
	httpServer "github.com/memolish/memolish-server/internal/api/http/server"
	"github.com/memolish/memolish-server/internal/config"
	"github.com/memolish/memolish-server/internal/gateway/gemini"
	"github.com/memolish/memolish-server/internal/gateway/tts"
	"github.com/memolish/memolish-server/internal/linkmeta"
	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/repository/postgres"
	"github.com/memolish/memolish-server/internal/service"
	storage "github.com/memolish/memolish-server/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	memoRepo := postgres.NewMemoRepository(db)
	transformRepo := postgres.NewTransformRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	generator := gemini.NewClient(cfg.Gemini, logger)
	synthesizer := tts.NewClient(cfg.Speech, logger)
	linkParser := linkmeta.New(cfg.Link, logger)

	quota := service.NewQuota(userRepo, cfg.Credits.Daily, logger)
	memoService := service.NewMemo(memoRepo, linkParser, logger)
	transformService := service.NewTransform(memoRepo, transformRepo, quota, generator, logger)
	audioService := service.NewAudio(memoRepo, storageClient, synthesizer, cfg.Storage.PresignTTL, cfg.Storage.DownloadTTL, logger)

	r := router.New(memoService, transformService, audioService, cfg.HTTP.CORSOrigins, cfg.Credits.Daily, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address())
		if err := srv.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
