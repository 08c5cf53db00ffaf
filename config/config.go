package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	DatabaseDSN string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	AccessSecret string

	// NDA expiry policy windows in days; 0 means the signed NDA never expires.
	BasicExpiryDays    int
	EnhancedExpiryDays int
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:         getEnv("SERVER_PORT", ":3000"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:5173"),
		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "nda-events"),
		KafkaUsername:      os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:      os.Getenv("KAFKA_PASSWORD"),
		AccessSecret:       os.Getenv("ACCESS_SECRET"),
		BasicExpiryDays:    getEnvInt("NDA_BASIC_EXPIRY_DAYS", 30),
		EnhancedExpiryDays: getEnvInt("NDA_ENHANCED_EXPIRY_DAYS", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
