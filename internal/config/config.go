package config

import (
	"os"
	"strconv"
	"time"
)

// TMDbConfig holds the catalog API settings.
type TMDbConfig struct {
	APIURL          string
	ImageURL        string
	ReadAccessToken string
	Timeout         time.Duration
	RequestsPerSec  float64
	MaxRetries      int
	RetryDelay      time.Duration
}

// StorageConfig selects the watchlist storage driver: memory, file, redis or postgres.
type StorageConfig struct {
	Driver      string
	DataDir     string
	RedisPrefix string
}

// TelegramConfig holds the bot token and the chat allowed to edit the watchlist.
type TelegramConfig struct {
	BotToken    string
	OwnerChatID int
}

func TMDb() TMDbConfig {
	return TMDbConfig{
		APIURL:          GetEnv("TMDB_API_URL", "https://api.themoviedb.org/3"),
		ImageURL:        GetEnv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p"),
		ReadAccessToken: GetEnv("TMDB_READ_ACCESS_TOKEN", ""),
		Timeout:         GetDuration("TMDB_TIMEOUT", 30*time.Second),
		RequestsPerSec:  GetFloat("TMDB_RATE_LIMIT", 20),
		MaxRetries:      GetInt("TMDB_MAX_RETRIES", 3),
		RetryDelay:      GetDuration("TMDB_RETRY_DELAY", 2*time.Second),
	}
}

func Storage() StorageConfig {
	return StorageConfig{
		Driver:      GetEnv("STORAGE_DRIVER", "file"),
		DataDir:     GetEnv("DATA_DIR", "data"),
		RedisPrefix: GetEnv("STORAGE_REDIS_PREFIX", "ibraflix:kv:"),
	}
}

func Telegram() TelegramConfig {
	return TelegramConfig{
		BotToken:    GetEnv("BOT_TOKEN", ""),
		OwnerChatID: GetInt("TELEGRAM_OWNER_CHAT_ID", 0),
	}
}

// RedisConfig returns host, port, password. An empty host disables Redis.
func RedisConfig() (string, string, string) {
	host := GetEnv("R_HOST", "")
	port := GetEnv("R_PORT", "6379")
	password := GetEnv("R_PASS", "")
	return host, port, password
}

// DatabaseConfig returns host, port, user, password, database name.
func DatabaseConfig() (string, string, string, string, string) {
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "")
	password := GetEnv("DB_PASSWORD", "")
	name := GetEnv("DB_NAME", "ibraflix")
	return host, port, user, password, name
}

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func GetFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
