package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", "60s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if c.Storage.UploadPath == "" {
		return fmt.Errorf("UPLOAD_PATH must not be empty")
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
