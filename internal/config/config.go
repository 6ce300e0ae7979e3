// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"https://serene-stays-ab67f.web.app",
	"https://serene-stays-ab67f.firebaseapp.com",
}

type Config struct {
	Port           string
	TokenSecret    string
	TokenTTL       time.Duration
	CookieSecure   bool
	AllowedOrigins []string

	StorageDriver string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string

	GinMode   string
	LogLevel  string
	LogFormat string
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          get("PORT", "5000"),
		TokenSecret:   getenv("ACCESS_TOKEN_SECRET"),
		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", DriverMongo)),
		MongoDatabase: get("MONGODB_DATABASE", "sereneStays"),
		PostgresURL:   getenv("POSTGRES_URL"),
		GinMode:       get("GIN_MODE", "release"),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "json"),
	}

	if cfg.TokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is required")
	}

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "1h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	secure, err := strconv.ParseBool(get("COOKIE_SECURE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = secure

	cfg.AllowedOrigins = defaultOrigins
	if v := getenv("CORS_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
		if len(cfg.AllowedOrigins) == 0 {
			return nil, errors.New("CORS_ORIGINS lists no origins")
		}
	}

	switch cfg.StorageDriver {
	case DriverMongo:
		cfg.MongoURI = getenv("MONGODB_URI")
		if cfg.MongoURI == "" {
			user, pass := getenv("DB_USER"), getenv("DB_PASS")
			if user == "" || pass == "" {
				return nil, errors.New("MONGODB_URI or DB_USER and DB_PASS are required for the mongo driver")
			}
			cfg.MongoURI = AtlasURI(user, pass, get("MONGODB_HOST", "cluster0.ocam1.mongodb.net"))
		}
	case DriverPostgres:
		if cfg.PostgresURL == "" {
			return nil, errors.New("POSTGRES_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// AtlasURI builds an SRV connection string with escaped credentials.
func AtlasURI(user, pass, host string) string {
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}
