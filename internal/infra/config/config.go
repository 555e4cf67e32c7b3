// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment configuration for the storefront client.
type Config struct {
	// Store backend
	APIBaseURL string
	APIToken   string
	APITimeout time.Duration

	// Cart persistence backend: "file" | "redis" | "postgres" | "firestore" | "memory"
	CartStorageBackend string
	CartStorePath      string
	RedisAddr          string
	RedisPassword      string
	PostgresDSN        string

	// Session verification: "jwt" (offline) | "firebase"
	SessionVerifier    string
	FirebaseProjectID  string
	FirestoreProjectID string
	// Empty means ADC (Application Default Credentials).
	FirestoreCredentialsFile string

	// Order confirmation mail; empty SendGridAPIKey disables mail.
	SendGridAPIKey string
	MailFrom       string
	MailTo         string
	// Secret Manager secret id holding the SendGrid key; overrides
	// SendGridAPIKey when set.
	SendGridSecretID string
}

// Load reads configuration from the environment.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	cfg := &Config{
		APIBaseURL: getenvDefault("STORE_API_BASE_URL", "http://localhost:8000"),
		APIToken:   os.Getenv("STORE_API_TOKEN"),
		APITimeout: getenvDuration("STORE_API_TIMEOUT", 15*time.Second),

		CartStorageBackend: getenvDefault("CART_STORAGE_BACKEND", "file"),
		CartStorePath:      getenvDefault("CART_STORE_PATH", ".store-state"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),

		SessionVerifier:          getenvDefault("SESSION_VERIFIER", "jwt"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		MailTo:           os.Getenv("MAIL_TO"),
		SendGridSecretID: os.Getenv("SENDGRID_SECRET_ID"),
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// plain integers mean seconds
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
