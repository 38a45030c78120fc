package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Models   ModelConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

// StoreConfig configures the sqlite-backed trained-model store
type StoreConfig struct {
	Path            string
	MaxConnections  int
	ConnMaxLifetime time.Duration
}

// ModelConfig carries tunables for the analytical engines
type ModelConfig struct {
	// RandomSeed makes tree ensembles reproducible across runs
	RandomSeed int64
	// Contamination is the expected anomaly proportion used at fit time
	Contamination float64
	// ForecastMonthsDefault is used when months_ahead is omitted
	ForecastMonthsDefault int
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	return &Config{
		Server: ServerConfig{
			Port:             getEnv("SERVER_PORT", "8000"),
			Host:             getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:      getEnv("APP_ENV", "development"),
			ReadTimeout:      getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:     getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			CORSAllowOrigins: getSliceEnv("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Store: StoreConfig{
			Path:            getEnv("MODEL_STORE_PATH", "saved_models/finsight.db"),
			MaxConnections:  getIntEnv("MODEL_STORE_MAX_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("MODEL_STORE_CONN_LIFETIME", time.Hour),
		},
		Models: ModelConfig{
			RandomSeed:            int64(getIntEnv("MODEL_RANDOM_SEED", 42)),
			Contamination:         getFloatEnv("ANOMALY_CONTAMINATION", 0.10),
			ForecastMonthsDefault: getIntEnv("FORECAST_MONTHS_DEFAULT", 6),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
		},
	}
}

// IsProduction returns true when running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Address returns the host:port string the HTTP server binds to
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
