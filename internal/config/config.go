package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DataDir           string
	ImageDir          string
	LogoDir           string
	AllowedOrigins    string
	Environment       string
	LogLevel          string
	MailgunAPIKey     string
	MailgunDomain     string
	MailgunSender     string
	MailgunSenderName string
}

func Load() *Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DataDir:           dataDir,
		ImageDir:          getEnv("IMAGE_DIR", filepath.Join(dataDir, "images")),
		LogoDir:           getEnv("LOGO_DIR", "assets/logos"),
		AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "http://localhost:8080"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		MailgunAPIKey:     getEnv("MAILGUN_API_KEY", ""),
		MailgunDomain:     getEnv("MAILGUN_DOMAIN", ""),
		MailgunSender:     getEnv("MAILGUN_SENDER_EMAIL", ""),
		MailgunSenderName: getEnv("MAILGUN_SENDER_NAME", "Partshelf"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) ItemsPath() string {
	return filepath.Join(c.DataDir, "items.json")
}

func (c *Config) CategoriesPath() string {
	return filepath.Join(c.DataDir, "categories.json")
}

func (c *Config) SuppliersPath() string {
	return filepath.Join(c.DataDir, "suppliers.json")
}

func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.json")
}

func (c *Config) QRTemplatesPath() string {
	return filepath.Join(c.DataDir, "qr_templates.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
