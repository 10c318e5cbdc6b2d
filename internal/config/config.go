package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	RedisURL        string
	ShopifyStoreURL string
	MetricsPort     string
	SiteURL         string
	UploadDir       string
}

func Load() *Config {
	// Try the project root first, then the current directory.
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		ShopifyStoreURL: os.Getenv("SHOPIFY_STORE_URL"),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
		SiteURL:         getEnv("SITE_URL", "www.ecoshiftcorp.com"),
		UploadDir:       getEnv("UPLOAD_DIR", "./out"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
