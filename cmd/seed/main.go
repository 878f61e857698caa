// Command seed writes the starter music recommendation catalog. Each run
// writes fresh documents, so running it twice duplicates the catalog.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/service"
	fsstore "github.com/mindful-space/wellness-platform/internal/store/firestore"
	"github.com/mindful-space/wellness-platform/pkg/logger"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logger.Global().Fatal("failed to create logger", zap.Error(err))
	}
	defer log.Sync()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("FIRESTORE_PROJECT_ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fs, err := fsstore.New(ctx, projectID)
	if err != nil {
		log.Fatal("failed to connect to firestore", zap.Error(err))
	}
	defer fs.Close()

	musicSvc := service.NewMusicService(fs, nil, log)
	seeded, err := musicSvc.SeedDefaults(ctx)
	if err != nil {
		log.Fatal("seeding failed", zap.Int("seeded", seeded), zap.Error(err))
	}

	log.Info("seeding complete", zap.Int("recommendations", seeded))
}
