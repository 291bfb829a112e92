package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config -> konfigurasi runtime dari environment (.env via godotenv)
type Config struct {
	Port      string
	GinMode   string
	RedisAddr string
}

func Load() Config {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		GinMode:   os.Getenv("GIN_MODE"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}

// InitDB membuka koneksi MySQL dari variabel environment
func InitDB() (*gorm.DB, error) {
	user := getEnv("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "3306")
	name := getEnv("DB_NAME", "qrmenu")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
