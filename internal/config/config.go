package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Бэкенды хранилища сохранённых расчётов
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port         int
	Env          string
	LogLevel     string
	CORSOrigins  []string
	MaxPrincipal float64
	MaxTermYears float64
	MaxRate      float64

	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
	S3            S3Config

	Auth0Domain   string
	Auth0Audience string
	DevAuthToken  string

	RateLimitPerMinute int
	RateLimitBurst     int

	OTELEndpoint    string
	OTELServiceName string
	OTELInsecure    bool
}

// S3Config параметры S3-хранилища (endpoint задаётся для MinIO/LocalStack)
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvInt("PORT", 8000),
		Env:          getEnvString("ENV", "development"),
		LogLevel:     getEnvString("LOG_LEVEL", "INFO"),
		CORSOrigins:  strings.Split(getEnvString("CORS_ORIGINS", "http://localhost:5173"), ","),
		MaxPrincipal: getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxTermYears: getEnvFloat("MAX_TERM_YEARS", 50),
		MaxRate:      getEnvFloat("MAX_RATE", 200),

		StoreBackend:  strings.ToLower(getEnvString("STORE_BACKEND", StoreMemory)),
		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		DatabaseURL:   getEnvString("DATABASE_URL", ""),
		S3: S3Config{
			Region:          getEnvString("S3_REGION", "us-east-1"),
			Bucket:          getEnvString("S3_BUCKET", "fincalc-calculations"),
			Prefix:          getEnvString("S3_PREFIX", "calculations/"),
			AccessKeyID:     getEnvString("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvString("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnvString("S3_ENDPOINT", ""),
		},

		Auth0Domain:   getEnvString("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnvString("AUTH0_AUDIENCE", ""),
		DevAuthToken:  getEnvString("DEV_AUTH_TOKEN", ""),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),

		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "fincalc-server"),
		OTELInsecure:    getEnvBool("OTEL_INSECURE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for store backend %q", c.StoreBackend)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store backend %q", c.StoreBackend)
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for store backend %q", c.StoreBackend)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if (c.Auth0Domain == "") != (c.Auth0Audience == "") {
		return fmt.Errorf("AUTH0_DOMAIN and AUTH0_AUDIENCE must be set together")
	}
	if c.MaxRate <= 0 || c.MaxPrincipal <= 0 || c.MaxTermYears <= 0 {
		return fmt.Errorf("MAX_RATE, MAX_PRINCIPAL and MAX_TERM_YEARS must be positive")
	}
	return nil
}

// IsProduction сообщает, запущен ли сервер в production-окружении
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
