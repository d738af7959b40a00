package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	Port            string
	APP_ENV         string
	CatalogFallback bool
	CartMaxQty      int
	DBMaxRetries    int
	DBRetryDelay    time.Duration
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          getEnv("DB_NAME", "edumarket"),
		DBPort:          getEnv("DB_PORT", "3306"),
		Port:            getEnv("APP_PORT", ":8080"),
		APP_ENV:         getEnv("APP_ENV", "development"),
		CatalogFallback: getBool("CATALOG_FALLBACK", false),
		CartMaxQty:      getInt("CART_MAX_QTY", 10),
		DBMaxRetries:    getInt("DB_MAX_RETRIES", 10),
		DBRetryDelay:    getDuration("DB_RETRY_DELAY", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		log.Printf("LoadEnv: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("LoadEnv: invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("LoadEnv: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return v
}
