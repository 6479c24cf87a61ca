package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultRefreshTokenExpiryDays = 30

type Config struct {
	App struct {
		Env  string
		Port string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	JWT struct {
		// AccessTokenSecret signs local access tokens. Required.
		AccessTokenSecret string
		// RefreshTokenExpiryDays controls how long opaque refresh tokens
		// stay usable. Non-positive overrides fall back to the default.
		RefreshTokenExpiryDays int
	}
	Firebase struct {
		CredentialsFile string
	}
}

// LoadConfig reads configuration from environment variables (optionally a
// .env file) into a Config struct. Call it once from main; the config and
// DB handle are passed down explicitly, never re-read.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "ligo_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", "")
	if cfg.JWT.AccessTokenSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET is required")
	}

	days, err := getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRY_DAYS", defaultRefreshTokenExpiryDays)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TOKEN_EXPIRY_DAYS: %w", err)
	}
	if days <= 0 {
		log.Printf("JWT_REFRESH_TOKEN_EXPIRY_DAYS=%d ignored, using default %d", days, defaultRefreshTokenExpiryDays)
		days = defaultRefreshTokenExpiryDays
	}
	cfg.JWT.RefreshTokenExpiryDays = days

	cfg.Firebase.CredentialsFile = getEnv("FIREBASE_CREDENTIALS_FILE", "")

	return cfg, nil
}

// ConnectDB opens the postgres connection.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the invite code generator retries on.
	gormConfig := &gorm.Config{TranslateError: true}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return gormDB, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
