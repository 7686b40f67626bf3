// Command assets uploads the embedded static files to the configured S3 bucket
// so the server can serve /static from object storage.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"todolist/internal/config"
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
	if cfg.Storage.Bucket == "" {
		logger.Fatalf("storage bucket is required (set TODOLIST_STORAGE_BUCKET)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Region:   cfg.Storage.Region,
		Profile:  cfg.AWS.Profile,
		Endpoint: cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatalf("s3 client: %v", err)
	}

	var publisher storage.Publisher = storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)
	location, err := publisher.UploadFS(ctx, web.Static(), storage.UploadOptions{
		ProgressCallback: func(done, total int64) {
			logger.WithFields(logrus.Fields{"done": done, "total": total}).Debug("upload progress")
		},
	})
	if err != nil {
		logger.Fatalf("publish assets: %v", err)
	}
	logger.Infof("static assets published to %s", location)
}
