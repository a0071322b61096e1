package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	AppEnv      string
	Port        string
	AppBaseURL  string
	FrontendURL string
	Timezone    *time.Location

	MongoURI    string
	MongoDBName string
	RedisURL    string

	JWTSecret                string
	SessionTokenExpiry       time.Duration
	PendingTokenExpiry       time.Duration
	VerificationCodeExpiry   time.Duration
	PasswordResetTokenExpiry time.Duration

	EmailHost     string
	EmailPort     string
	EmailSecure   bool
	EmailUser     string
	EmailPassword string
	EmailFrom     string

	GoogleClientID     string
	GoogleClientSecret string

	CORSOrigins        []string
	RateLimitPerSecond float64
	NotifyWorkers      int
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// Load reads .env when present, then the environment. MONGODB_URI and
// JWT_SECRET are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	tzName := getEnv("APP_TIMEZONE", "Europe/Rome")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tzName, err)
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		Port:        getEnv("PORT", "8080"),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Timezone:    loc,

		MongoURI:    getEnv("MONGODB_URI", ""),
		MongoDBName: getEnv("MONGODB_DB_NAME", "glitchlab"),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:                getEnv("JWT_SECRET", ""),
		SessionTokenExpiry:       time.Hour * time.Duration(getEnvAsInt("SESSION_TOKEN_EXPIRY_HOURS", 168)), // 7 days
		PendingTokenExpiry:       time.Hour * time.Duration(getEnvAsInt("PENDING_TOKEN_EXPIRY_HOURS", 24)),
		VerificationCodeExpiry:   time.Minute * time.Duration(getEnvAsInt("VERIFICATION_CODE_EXPIRY_MINUTES", 30)),
		PasswordResetTokenExpiry: time.Minute * time.Duration(getEnvAsInt("PASSWORD_RESET_TOKEN_EXPIRY_MINUTES", 15)),

		EmailHost:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:     getEnv("EMAIL_PORT", "587"),
		EmailSecure:   getEnvAsBool("EMAIL_SECURE", false),
		EmailUser:     getEnv("EMAIL_USER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),
		EmailFrom:     getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),

		CORSOrigins:        getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 20),
		NotifyWorkers:      getEnvAsInt("NOTIFY_WORKERS", 4),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

func (c *Config) GetFrontendURL() string {
	return c.FrontendURL
}

// GetTimezone is the zone used to format dates in emails.
func (c *Config) GetTimezone() *time.Location {
	return c.Timezone
}

func (c *Config) GetSessionTokenExpiry() time.Duration {
	return c.SessionTokenExpiry
}

func (c *Config) GetPendingTokenExpiry() time.Duration {
	return c.PendingTokenExpiry
}

func (c *Config) GetVerificationCodeExpiry() time.Duration {
	return c.VerificationCodeExpiry
}

func (c *Config) GetPasswordResetTokenExpiry() time.Duration {
	return c.PasswordResetTokenExpiry
}

// IsProduction reports whether APP_ENV is prod.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod"
}

// GoogleOAuthEnabled reports whether both Google credentials are set.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}

// comma separated
func getEnvAsList(name string, fallback []string) []string {
	valStr := getEnv(name, "")
	if valStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
