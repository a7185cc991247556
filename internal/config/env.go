package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	TelegramBotToken string
	TelegramAPIID    int
	TelegramAPIHash  string
	GeminiAPIKey     string

	// Optional with defaults
	Timezone              string
	GoogleCredentialsFile string
	GoogleTokenFile       string
	TelegramSessionPath   string
	GeminiModel           string
	GeminiTemperature     float64
	ChatHistorySize       int
	TurnWorkers           int
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAPIID:    getEnvAsIntOrDefault("TELEGRAM_API_ID", 0),
		TelegramAPIHash:  os.Getenv("TELEGRAM_API_HASH"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),

		// Optional with defaults
		Timezone:              getEnvOrDefault("TIMEZONE", "Asia/Jakarta"),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),
		TelegramSessionPath:   getEnvOrDefault("JADWAL_TELEGRAM_SESSION", "./telegram.session"),
		GeminiModel:           getEnvOrDefault("JADWAL_GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTemperature:     getEnvAsFloatOrDefault("JADWAL_GEMINI_TEMPERATURE", 0.7),
		ChatHistorySize:       getEnvAsIntOrDefault("JADWAL_CHAT_HISTORY_SIZE", 20),
		TurnWorkers:           getEnvAsIntOrDefault("JADWAL_TURN_WORKERS", 4),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
