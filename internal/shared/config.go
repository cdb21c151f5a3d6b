package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	StoreBackend string // remote | mysql | memory
	StoreBaseURL string
	StoreAPIKey  string
	StoreRPS     int
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	SeedWorkers  int
	CacheTTL     time.Duration
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		StoreBackend: env("STORE_BACKEND", "memory"),
		StoreBaseURL: env("STORE_BASE_URL", ""),
		StoreAPIKey:  env("STORE_API_KEY", ""),
		StoreRPS:     atoi("STORE_RPS", 10),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/stayfinder?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		SeedWorkers:  atoi("SEED_WORKERS", 8),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.StoreBackend == "remote" && c.StoreBaseURL == "" {
		log.Warn().Msg("STORE_BACKEND=remote but STORE_BASE_URL is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
