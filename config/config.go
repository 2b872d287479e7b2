package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	Host        string
	DatabaseURL string

	JWTSecret    string
	JWTExpiresIn string

	GoogleClientID string

	UploadDir string

	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPPass string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Host:           getEnv("HOST", "0.0.0.0"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=postgres user=postgres password=postgres dbname=duka port=5432 sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiresIn:   getEnv("JWT_EXPIRES_IN", "72h"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		UploadDir:      getEnv("UPLOAD_DIR", "./public/uploads"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
