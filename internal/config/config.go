package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	// DataFile — таблица каталога, которую пишет внешний синхронизатор.
	DataFile string
	// PriceOffset — калибровочная добавка к регрессионной цене.
	PriceOffset float64
	// TopK — размер верхушки для статистического fallback.
	TopK int
}

func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	topK, _ := strconv.Atoi(getenv("TOP_K", "10"))
	offset, err := strconv.ParseFloat(getenv("PRICE_OFFSET", ""), 64)
	if err != nil {
		offset = 87.5 // см. service.DefaultPriceOffset
	}
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/stone-price-service.log"),
		MaxUploadMB:  mb,
		DataFile:     getenv("DATA_FILE", "data/latest_data.csv"),
		PriceOffset:  offset,
		TopK:         topK,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
