package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-manager/utils"
)

type Config struct {
	DBDSN string
	Port  string
}

// Load reads settings from the environment. Defaults match a local MySQL
// without a password, same as the desktop deployments this replaces.
func Load() Config {
	cfg := Config{
		DBDSN: os.Getenv("DB_DSN"),
		Port:  os.Getenv("PORT"),
	}

	if cfg.DBDSN == "" {
		user := getEnv("DB_USER", "root")
		pass := os.Getenv("DB_PASSWORD")
		host := getEnv("DB_HOST", "127.0.0.1")
		port := getEnv("DB_PORT", "3306")
		name := getEnv("DB_NAME", "restaurant_db")
		cfg.DBDSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, pass, host, port, name)
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDatabase connects to MySQL. If the connection fails the app switches
// to a disposable sqlite in-memory store once, at startup, so it stays
// usable in demo mode. The two stores are never mixed per call.
func OpenDatabase(cfg Config) (*gorm.DB, bool, error) {
	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err == nil {
		return db, false, nil
	}

	utils.ErrorLogger.Errorf("Failed to connect to MySQL: %v", err)
	utils.InfoLogger.Println("Falling back to in-memory store (demo mode), data will not survive a restart")

	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, false, fmt.Errorf("open fallback store: %w", err)
	}
	return db, true, nil
}
