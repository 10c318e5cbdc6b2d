package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"lumicms/internal/config"
	"lumicms/internal/db"
	"lumicms/internal/extract"
	"lumicms/internal/observability"
	"lumicms/internal/repository"
)

// go run cmd/extract/main.go -source=shopify -actor=extract-batch
func main() {
	source := flag.String("source", "shopify", "Import source marker to process")
	actor := flag.String("actor", "extract-batch", "Actor recorded on updated products")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	observability.Start(cfg.MetricsPort)

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	batch := &extract.Batch{
		Products: &repository.ProductRepository{DB: pool},
		Taxonomy: &repository.TaxonomyRepository{DB: pool},
		Source:   *source,
		Actor:    *actor,
		Log:      logger,
	}

	sum, err := batch.Run(ctx)
	if err != nil {
		logger.Fatal("batch aborted", zap.Error(err))
	}

	for _, code := range sum.Failed {
		logger.Warn("record not updated", zap.String("itemCode", code))
	}
	logger.Info("done",
		zap.Int("processed", sum.Processed),
		zap.Int("updated", sum.Updated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", len(sum.Failed)))
}
