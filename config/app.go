package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvTest = "test"
	EnvDev  = "dev"
	EnvProd = "prod"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type AppConfig struct {
	Env          string // test, dev or prod
	HTTPAddr     string
	LogLevel     string
	StoreDriver  string // memory, postgres or redis
	HistoryLimit int
	Writer       WriterConfig
}

// WriterConfig tunes the asynchronous patch writer.
type WriterConfig struct {
	Buffer      int
	MaxAttempts int
	RetryDelay  time.Duration
}

// LoadDotEnv loads .env from the working directory when present.
func LoadDotEnv() {
	if path := os.Getenv("ENV_FILE"); path != "" {
		_ = godotenv.Load(path)
		return
	}
	_ = godotenv.Load()
}

func NewAppConfig() AppConfig {

	conf := AppConfig{
		Env:          getEnv("APP_ENV", EnvDev),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		StoreDriver:  getEnv("STORE_DRIVER", StoreMemory),
		HistoryLimit: getInt("HISTORY_LIMIT", 60),
		Writer: WriterConfig{
			Buffer:      getInt("WRITER_BUFFER", 256),
			MaxAttempts: getInt("WRITER_MAX_ATTEMPTS", 3),
			RetryDelay:  getDuration("WRITER_RETRY_DELAY", 200*time.Millisecond),
		},
	}

	return conf
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
