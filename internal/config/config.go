package config

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries all runtime settings. One instance is built at process start
// and handed to everything that needs it; no package reads the environment on
// its own.
type Config struct {
	Port                 string
	DataFile             string
	DatabaseFile         string
	DatabaseURL          string
	AlphaVantageKey      string
	AlphaVantageEndpoint string
	CoinrankingKey       string
	CoinrankingHost      string
}

// Load builds the configuration from environment variables with workable
// defaults, so the app runs out of the box after cloning.
func Load() Config {
	return Config{
		Port:                 getenv("PORT", "8080"),
		DataFile:             getenv("FINANCE_DASH_DATA_FILE", "data/transactions_v3.xlsx"),
		DatabaseFile:         getenv("FINANCE_DASH_DB_FILE", "finance_dash.db"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		AlphaVantageKey:      os.Getenv("ALPHAVANTAGE_API_KEY"),
		AlphaVantageEndpoint: getenv("ALPHAVANTAGE_ENDPOINT", "https://www.alphavantage.co/query"),
		CoinrankingKey:       os.Getenv("COINRANKING_API_KEY"),
		CoinrankingHost:      getenv("COINRANKING_HOST", "coinranking1.p.rapidapi.com"),
	}
}

// InitDB opens the application database. SQLite is the default local store;
// setting DATABASE_URL switches to Postgres.
func InitDB(cfg Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.DatabaseFile), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	return db
}

func getenv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
