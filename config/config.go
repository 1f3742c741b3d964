package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	SigningKey  string
	Environment string
}

func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		Port:        getEnv("PORT", "8090"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBName:      getEnv("DB_NAME", "accounts"),
		SigningKey:  getEnv("AUTH_SIGNING_KEY", ""),
		Environment: getEnv("ENV", "development"),
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
