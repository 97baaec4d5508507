// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Content backends.
const (
	BackendSanity   = "sanity"
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port     string `env:"APP_PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"
	SiteName string `env:"SITE_NAME" envDefault:"ChrisCakes"`
	SiteURL  string `env:"SITE_URL" envDefault:"https://chriscakes.com"`
	LogFile  string `env:"LOG_FILE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Content source
	ContentBackend   string `env:"CONTENT_BACKEND" envDefault:"file"`
	SanityProjectID  string `env:"SANITY_PROJECT_ID"`
	SanityDataset    string `env:"SANITY_DATASET" envDefault:"production"`
	SanityAPIVersion string `env:"SANITY_API_VERSION" envDefault:"2024-01-01"`
	SanityToken      string `env:"SANITY_TOKEN"`
	SanityUseCDN     bool   `env:"SANITY_USE_CDN" envDefault:"true"`
	ContentDir       string `env:"CONTENT_DIR"` // empty uses the embedded fixtures
	ContentWatch     bool   `env:"CONTENT_WATCH"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"chriscakes"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"chriscakes"`

	// Valkey (Redis-compatible cache); empty host disables the page cache
	ValkeyHost     string        `env:"VALKEY_HOST"`
	ValkeyPort     string        `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string        `env:"VALKEY_PASSWORD"`
	PageCacheTTL   time.Duration `env:"PAGE_CACHE_TTL" envDefault:"60s"`

	// S3-compatible object storage for images
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"fsn1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"chriscakes-public"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
	S3Prefix    string `env:"S3_PREFIX" envDefault:"images"`

	// Outbound mail
	ResendAPIKey   string `env:"RESEND_API_KEY"`
	FromEmail      string `env:"RESEND_FROM_EMAIL" envDefault:"onboarding@resend.dev"`
	SMTPHost       string `env:"SMTP_HOST" envDefault:"smtp.resend.com"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"465"`
	SMTPUsername   string `env:"SMTP_USERNAME" envDefault:"resend"`
	ContactEmailTo string `env:"CONTACT_EMAIL_TO"`

	// Contact form rate limit, per client
	ContactRateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"3"`
	ContactRateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1h"`

	// RevalidateSecret guards the cache revalidation endpoint; empty disables it.
	RevalidateSecret string `env:"REVALIDATE_SECRET"`
}

// Load reads configuration from environment variables, after loading any
// of the given dotenv files that exist (".env" when none are given).
// Variables already set in the environment win over file values. Returns
// an error if critical values are missing or invalid.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ContentBackend {
	case BackendSanity:
		if c.SanityProjectID == "" {
			return fmt.Errorf("SANITY_PROJECT_ID must be set for the sanity backend")
		}
	case BackendPostgres:
		if c.Env == "production" && c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	case BackendFile:
	default:
		return fmt.Errorf("unknown CONTENT_BACKEND %q", c.ContentBackend)
	}

	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SITE_URL must be an absolute URL, got %q", c.SiteURL)
	}

	if c.ContactRateLimit < 1 || c.ContactRateWindow <= 0 {
		return fmt.Errorf("contact rate limit must be positive")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPassword), c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
