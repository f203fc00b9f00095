// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string
	StoreName      string

	AdminUsername string
	AdminPassword string

	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	UPIPayeeVPA   string
	UPIPayeeName  string
	PaymentWindow time.Duration
}

// Load reads the environment. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getenv("PORT", "4500"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getenv("MONGO_DB", "storefront"),
		JWTSecret: getenv("JWT_SECRET", "your_secret_key"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      getenv("EMAIL_FROM", "no-reply@example.com"),
		EmailFromName:  getenv("EMAIL_FROM_NAME", "Storefront"),
		StoreName:      getenv("STORE_NAME", "Storefront"),

		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		Currency:          getenv("CURRENCY", "INR"),

		UPIPayeeVPA:   os.Getenv("UPI_PAYEE_VPA"),
		UPIPayeeName:  getenv("UPI_PAYEE_NAME", "Storefront"),
		PaymentWindow: getseconds("PAYMENT_WINDOW_SECONDS", 60),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getseconds(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
