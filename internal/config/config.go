package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from the environment. A .env
// file is honored when present, real environment variables win.
type Config struct {
	Env  string
	Port string

	DatabaseDSN string

	RedisAddr string
	RedisPass string
	RedisDB   int

	JWTSecret    string
	JWTExpiryMin int

	HouseEdge     float64
	CoinHeadsOver int
	CoinTailsMax  int
	OptionsPayout float64

	OracleURL    string
	OracleSymbol string

	FaucetMax float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASSWORD", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiryMin: getEnvInt("JWT_EXPIRY_MINUTES", 60*24),

		HouseEdge:     getEnvFloat("HOUSE_EDGE", 0.01),
		CoinHeadsOver: getEnvInt("COIN_HEADS_OVER", 51),
		CoinTailsMax:  getEnvInt("COIN_TAILS_MAX", 49),
		OptionsPayout: getEnvFloat("OPTIONS_PAYOUT", 1.9),

		OracleURL:    getEnv("ORACLE_URL", ""),
		OracleSymbol: getEnv("ORACLE_SYMBOL", "SOL/USD"),

		FaucetMax: getEnvFloat("FAUCET_MAX", 1000),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HouseEdge < 0 || cfg.HouseEdge >= 1 {
		return nil, fmt.Errorf("HOUSE_EDGE must be in [0, 1), got %v", cfg.HouseEdge)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
