package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"lumicms/internal/config"
	"lumicms/internal/db"
	"lumicms/internal/model"
	"lumicms/internal/observability"
	"lumicms/internal/repository"
	"lumicms/internal/shopify"
)

// go run cmd/shopify-sync/main.go -actor=shopify-sync
func main() {
	actor := flag.String("actor", "shopify-sync", "Actor recorded on synced products")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.ShopifyStoreURL == "" {
		logger.Fatal("SHOPIFY_STORE_URL is not set")
	}

	observability.Start(cfg.MetricsPort)

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	repo := &repository.ProductRepository{DB: pool}
	client := &shopify.Client{StoreURL: cfg.ShopifyStoreURL}

	synced, failed := 0, 0
	err = client.FetchProducts(ctx, func(p shopify.Product) {
		err := repo.Save(ctx, model.Product{
			ItemCode:     p.ItemCode(),
			Name:         p.Title,
			Brand:        p.Vendor,
			Description:  p.BodyHTML,
			ImportSource: "shopify",
			MainImageURL: p.MainImageSrc(),
		}, *actor)
		if err != nil {
			failed++
			logger.Warn("save failed", zap.String("itemCode", p.ItemCode()), zap.Error(err))
			return
		}
		synced++
		observability.ShopifyProductsSyncedTotal.Inc()
	})
	if err != nil {
		logger.Fatal("storefront fetch failed", zap.Error(err))
	}

	logger.Info("sync finished", zap.Int("synced", synced), zap.Int("failed", failed))
}
