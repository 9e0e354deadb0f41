package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	DBDriver  string
	DBDSN     string
	RedisAddr string
	HTTPPort  string
	// ConflictScanCron is the schedule for the alias conflict refresh job.
	ConflictScanCron string
}

func LoadConfig() *Config {
	return &Config{
		DBDriver:         env("COMIC_DB_DRIVER", "sqlite"),
		DBDSN:            env("COMIC_DB_DSN", ".tmp/comic.db"),
		RedisAddr:        env("COMIC_REDIS_ADDR", "localhost:6379"),
		HTTPPort:         env("COMIC_HTTP_PORT", "4021"),
		ConflictScanCron: env("COMIC_CONFLICT_SCAN_CRON", "@every 5m"),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDb(cnf *Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cnf.DBDriver {
	case "postgres":
		dialector = postgres.Open(cnf.DBDSN)
	default:
		dialector = sqlite.Open(cnf.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}

	return db
}
