package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"lumicms/internal/config"
	"lumicms/internal/db"
	"lumicms/internal/repository"
	"lumicms/internal/tds"
)

// go run cmd/tds/main.go -item=FL-40-ECO
func main() {
	item := flag.String("item", "", "Item code of the product to render")
	out := flag.String("out", "", "Output dir (default UPLOAD_DIR)")
	flag.Parse()

	if *item == "" {
		log.Fatal("-item is required")
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pool.Close()

	repo := &repository.ProductRepository{DB: pool}
	product, err := repo.GetByItemCode(ctx, *item)
	if err != nil {
		log.Fatalf("Failed to load product %s: %v", *item, err)
	}

	dir := cfg.UploadDir
	if *out != "" {
		dir = *out
	}
	generator := &tds.Generator{
		Upload:  tds.DirUploader(dir),
		SiteURL: cfg.SiteURL,
	}
	if cfg.RedisURL != "" {
		generator.Logos = &tds.LogoCache{
			Client: redis.NewClient(&redis.Options{Addr: cfg.RedisURL}),
		}
	}

	url, err := generator.Generate(ctx, tds.RenderRequest{
		ItemDescription:     product.Name,
		EcoItemCode:         product.ItemCode,
		Brand:               product.Brand,
		TechnicalSpecs:      product.TechnicalSpecs,
		MainImageURL:        product.MainImageURL,
		DimensionDrawingURL: product.DimensionDrawingURL,
		MountingHeightURL:   product.MountingHeightURL,
	})
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	fmt.Println(url)
}
