package config

import (
	"os"

	"github.com/joho/godotenv"

	"shopapi/internal/logger"
)

// Product write policies selectable per deployment. The source material for
// this API gated product creation differently across revisions, so the rule
// is configuration rather than code.
const (
	ProductCreateAdmin  = "admin"
	ProductCreatePublic = "public"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort          string
	MySQLDSN            string
	LogLevel            string
	ProductCreatePolicy string
}

// Load builds Config from a .env file (when present) and environment
// variables with sensible defaults.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Infow("no .env file found, using system environment", "err", err)
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		MySQLDSN:            getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/shop?charset=utf8mb4&parseTime=True&loc=Local"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ProductCreatePolicy: productPolicy(getEnv("PRODUCT_CREATE_POLICY", ProductCreateAdmin)),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func productPolicy(v string) string {
	if v == ProductCreatePublic {
		return ProductCreatePublic
	}
	return ProductCreateAdmin
}
