package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Text-generation endpoint (HF-style inference API)
	LLMAPIURL         string
	LLMAPIToken       string
	LLMConcurrentReqs int

	// Gemini (multimodal OCR)
	GeminiAPIKey string

	// Billing
	FreeDailyQuota int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),
		// API credentials are injected, never defaulted. A missing token is a
		// deployment error and must fail at startup, not at first request.
		LLMAPIToken:       mustGetEnv("HF_API_TOKEN"),
		LLMAPIURL:         getEnvOrDefault("HF_API_URL", "https://api-inference.huggingface.co/models/meta-llama/Llama-3-8b-chat-hf"),
		LLMConcurrentReqs: getEnvAsIntOrDefault("LLM_CONCURRENT_REQUESTS", 5),
		GeminiAPIKey:      mustGetEnv("GEMINI_API_KEY"),
		FreeDailyQuota:    getEnvAsIntOrDefault("FREE_DAILY_QUOTA", 5),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
