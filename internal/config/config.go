package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment       string
	LogLevel          string
	HTTPAddr          string
	DBDSN             string
	MigrationsEnabled bool

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	AuthRedirectURL   string

	CORSAllowedOrigins []string
	ReadHeaderTimeout  time.Duration
	ShutdownTimeout    time.Duration
	IdentityTimeout    time.Duration
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables win when it is absent
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:        getenv("ENV", "development"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		HTTPAddr:           getenv("HTTP_ADDR", ":5000"),
		DBDSN:              os.Getenv("DB_DSN"),
		MigrationsEnabled:  getenvBool("MIGRATIONS_ENABLED", true),
		SupabaseURL:        strings.TrimSuffix(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		AuthRedirectURL:    getenv("AUTH_REDIRECT_URL", "http://localhost:5173/login"),
		CORSAllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ReadHeaderTimeout:  getenvDuration("READ_HEADER_TIMEOUT", 5*time.Second),
		ShutdownTimeout:    getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		IdentityTimeout:    getenvDuration("IDENTITY_TIMEOUT", 10*time.Second),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.SupabaseJWTSecret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET is required but not set")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
