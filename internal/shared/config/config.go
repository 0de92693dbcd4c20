package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	Port          string
	MetricsPort   string
	Env           string
	JWTSecret     string
	PublicBaseURL string

	// Logo storage
	UploadProvider string // "local" or "cloudinary"
	UploadDir      string
	UploadBaseURL  string
	CloudinaryURL  string

	// Lead notification mail
	EmailProvider string // "brevo" or "resend"
	BrevoAPIKey   string
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string

	// Public chat rate limit (requests per minute per IP)
	ChatRateRPM int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           os.Getenv("PORT"),
		MetricsPort:    os.Getenv("METRICS_PORT"),
		Env:            os.Getenv("ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
		UploadProvider: os.Getenv("UPLOAD_PROVIDER"),
		UploadDir:      os.Getenv("UPLOAD_DIR"),
		UploadBaseURL:  os.Getenv("UPLOAD_BASE_URL"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		EmailProvider:  os.Getenv("EMAIL_PROVIDER"),
		BrevoAPIKey:    os.Getenv("BREVO_API_KEY"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		EmailFromName:  os.Getenv("EMAIL_FROM_NAME"),
		ChatRateRPM:    envInt("CHAT_RATE_RPM", 60),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MetricsPort == "" {
		cfg.MetricsPort = "9090"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.UploadProvider == "" {
		cfg.UploadProvider = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.UploadBaseURL == "" {
		cfg.UploadBaseURL = cfg.PublicBaseURL
	}

	return cfg
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("⚠️ Invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return n
}
