package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todolist/internal/auth"
	"todolist/internal/config"
	apphttp "todolist/internal/http"
	"todolist/internal/repository/sqlite"
	"todolist/internal/service"
	"todolist/internal/storage"
	"todolist/internal/web"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.SessionSecret) == "" {
		logger.Fatalf("auth session secret is required (set TODOLIST_AUTH_SESSIONSECRET)")
	}
	if cfg.Auth.SessionTTLMinutes <= 0 {
		logger.Fatalf("auth session ttl must be positive, got %d minutes", cfg.Auth.SessionTTLMinutes)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database at %q: %v", cfg.Database.Path, err)
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db, logger); err != nil {
		logger.Fatalf("migrate database at %q: %v", cfg.Database.Path, err)
	}

	sessionTTL := time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	userService := service.NewUserService(sqlite.NewUserRepository(db))
	todoService := service.NewTodoService(sqlite.NewTodoRepository(db))
	sessionService := service.NewSessionService(sqlite.NewSessionRepository(db), sessionTTL)

	if n, err := sessionService.PurgeExpired(ctx); err != nil {
		logger.Warnf("purge expired sessions: %v", err)
	} else if n > 0 {
		logger.Infof("purged %d expired sessions", n)
	}

	signer, err := auth.NewSigner(cfg.Auth.SessionSecret)
	if err != nil {
		logger.Fatalf("session signer: %v", err)
	}

	templates, err := web.Templates()
	if err != nil {
		logger.Fatalf("parse templates: %v", err)
	}

	assets, err := buildAssets(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup static assets: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Options{
		Users:        userService,
		Todos:        todoService,
		Sessions:     sessionService,
		Signer:       signer,
		Assets:       assets,
		Templates:    templates,
		Messages:     cfg.Messages,
		SiteTitle:    cfg.Site.Title,
		SessionTTL:   sessionTTL,
		SecureCookie: cfg.Auth.SecureCookie,
		Logger:       logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s (database %s)", cfg.Server.Addr, cfg.Database.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildAssets serves /static from the embedded tree unless a bucket is configured.
func buildAssets(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.AssetStore, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("serving static assets from the binary")
		return storage.NewFSStore(web.Static()), nil
	}

	client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Region:   cfg.Storage.Region,
		Profile:  cfg.AWS.Profile,
		Endpoint: cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("serving static assets from s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix), nil
}
