package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port           string
	Env            string
	MongoURI       string
	MongoDBName    string
	NewsAPIBaseURL string
	NewsAPIHost    string
	NewsAPIKey     string
	GroqAPIKey     string
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		MongoURI:       getEnv("MONGODB_URI", ""),
		MongoDBName:    getEnv("MONGODB_DB", "newsbrief"),
		NewsAPIBaseURL: getEnv("NEWS_API_BASE_URL", "https://news67.p.rapidapi.com/v2/topic-search"),
		NewsAPIHost:    getEnv("NEWS_API_HOST", "news67.p.rapidapi.com"),
		NewsAPIKey:     getEnv("NEWS_API_KEY", ""),
		GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
