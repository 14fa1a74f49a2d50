package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Storage drivers for the media upload collaborator.
const (
	StorageR2    = "r2"
	StorageMinIO = "minio"
)

type Config struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"toptop"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"require"`

	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// JWTSecret verifies identity tokens issued by the identity provider.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// RedisURL is optional. Without it every authenticated request upserts its account.
	RedisURL string `envconfig:"REDIS_URL"`

	StorageDriver  string `envconfig:"STORAGE_DRIVER" default:"r2"`
	MediaPublicURL string `envconfig:"MEDIA_PUBLIC_URL"`
	MediaBucket    string `envconfig:"MEDIA_BUCKET"`

	R2AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`

	MinIOEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinIOAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinIOUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found or error loading it, relying on environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}

	switch cfg.StorageDriver {
	case StorageR2, StorageMinIO:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return &cfg, nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
