package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"lumicms/internal/config"
	"lumicms/internal/db"
	"lumicms/internal/ingest"
	"lumicms/internal/model"
	"lumicms/internal/repository"
	"lumicms/internal/tds"
)

// go run cmd/import/main.go -file=catalog.xlsx
// go run cmd/import/main.go -file=catalog.xlsx -save -tds -actor=jane
func main() {
	file := flag.String("file", "", "Path to the xlsx price list")
	save := flag.Bool("save", false, "Persist parsed products")
	renderTds := flag.Bool("tds", false, "Render a technical data sheet per product")
	out := flag.String("out", "", "Output dir for rendered sheets (default UPLOAD_DIR)")
	actor := flag.String("actor", "import-cli", "Actor recorded on saved products")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	cfg := config.Load()
	ctx := context.Background()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}
	defer f.Close()

	products, report := ingest.ParseWorkbook(f)
	printReport(products, report)
	if !report.IsValid {
		os.Exit(1)
	}

	if !*save && !*renderTds {
		return
	}

	var repo *repository.ProductRepository
	if *save {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pool.Close()
		repo = &repository.ProductRepository{DB: pool}
	}

	dir := cfg.UploadDir
	if *out != "" {
		dir = *out
	}
	generator := &tds.Generator{
		Upload:  tds.DirUploader(dir),
		SiteURL: cfg.SiteURL,
	}

	for _, p := range products {
		if *save {
			err := repo.Save(ctx, model.Product{
				ItemCode:       p.ItemCode,
				Name:           p.ProductName,
				Brand:          p.Brand,
				ImportSource:   "excel",
				TechnicalSpecs: p.TechnicalSpecs,
			}, *actor)
			if err != nil {
				log.Printf("Failed to save %s: %v", p.ItemCode, err)
				continue
			}
		}

		if *renderTds {
			url, err := generator.Generate(ctx, tds.RenderRequest{
				ItemDescription: p.ProductName,
				EcoItemCode:     p.ItemCode,
				Brand:           p.Brand,
				TechnicalSpecs:  p.TechnicalSpecs,
			})
			if err != nil {
				log.Printf("Failed to render TDS for %s: %v", p.ItemCode, err)
				continue
			}
			log.Printf("Rendered %s -> %s", p.ItemCode, url)
		}
	}

	log.Println("Import finished")
}

func printReport(products []model.ParsedProductRecord, report model.ImportReport) {
	fmt.Printf("Parsed %d products (valid=%v)\n", len(products), report.IsValid)
	for _, s := range report.SkippedSheets {
		fmt.Printf("  skipped sheet: %s\n", s)
	}
	for _, e := range report.Errors {
		fmt.Printf("  error: %s\n", e)
	}
}
