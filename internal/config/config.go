package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string

	AccessTokenSecret string
	AccessTokenTTL    time.Duration
	AdminSessionTTL   time.Duration
	AdminEmail        string
	AdminPassword     string

	RateLimitMax      int
	RateLimitWindow   time.Duration
	RateLimitRedisURL string

	SMTP    SMTPConfig
	Company CompanyConfig

	VATRate               float64
	FreeDeliveryThreshold float64

	ShutdownTimeout time.Duration
	LogFormat       string
	LogLevel        string
}

// SMTPConfig carries mail transport credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// CompanyConfig is the supplier identity used as sender and notification recipient.
type CompanyConfig struct {
	Name       string
	Director   string
	Address    string
	PostalCode string
	Phone      string
	Email      string
	VATNumber  string
}

const (
	defaultRunAddress            = ":8080"
	defaultAccessTokenTTL        = time.Hour
	defaultAdminSessionTTL       = 12 * time.Hour
	defaultRateLimitMax          = 5
	defaultRateLimitWindow       = time.Hour
	defaultSMTPHost              = "smtp.gmail.com"
	defaultSMTPPort              = 465
	defaultCompanyName           = "BO Company SRL"
	defaultVATRate               = 0.21
	defaultFreeDeliveryThreshold = 350
	defaultShutdownTimeout       = 10 * time.Second
	defaultLogFormat             = "json"
	defaultLogLevel              = "info"
)

// Load parses configuration from an optional .env file, flags and environment variables.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// LoadEnv is Load without command line flags, for tools that own their own flag set.
func LoadEnv() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return load(nil, os.LookupEnv)
}

func loadEnvFile() error {
	envFile := ".env"
	if v, ok := os.LookupEnv("ENV_FILE"); ok && v != "" {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		AccessTokenSecret: getString(lookup, "ACCESS_TOKEN_SECRET", ""),
		AccessTokenTTL:    getDuration(lookup, "ACCESS_TOKEN_TTL", defaultAccessTokenTTL),
		AdminSessionTTL:   getDuration(lookup, "ADMIN_SESSION_TTL", defaultAdminSessionTTL),
		AdminEmail:        getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:     getString(lookup, "ADMIN_PASSWORD", ""),
		RateLimitMax:      getInt(lookup, "RATE_LIMIT_MAX", defaultRateLimitMax),
		RateLimitWindow:   getDuration(lookup, "RATE_LIMIT_WINDOW", defaultRateLimitWindow),
		RateLimitRedisURL: getString(lookup, "RATE_LIMIT_REDIS_URL", ""),
		SMTP: SMTPConfig{
			Host:     getString(lookup, "SMTP_HOST", ""),
			Port:     getInt(lookup, "SMTP_PORT", defaultSMTPPort),
			Username: getString(lookup, "SMTP_USERNAME", ""),
			Password: getString(lookup, "SMTP_PASSWORD", ""),
			From:     getString(lookup, "MAIL_FROM", ""),
		},
		Company: CompanyConfig{
			Name:       getString(lookup, "COMPANY_NAME", defaultCompanyName),
			Director:   getString(lookup, "COMPANY_DIRECTOR", ""),
			Address:    getString(lookup, "COMPANY_ADDRESS", ""),
			PostalCode: getString(lookup, "COMPANY_POSTAL_CODE", ""),
			Phone:      getString(lookup, "COMPANY_PHONE", ""),
			Email:      getString(lookup, "COMPANY_EMAIL", ""),
			VATNumber:  getString(lookup, "COMPANY_VAT_NUMBER", ""),
		},
		VATRate:               getFloat(lookup, "VAT_RATE", defaultVATRate),
		FreeDeliveryThreshold: getFloat(lookup, "FREE_DELIVERY_THRESHOLD", defaultFreeDeliveryThreshold),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogFormat:             getString(lookup, "LOG_FORMAT", defaultLogFormat),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fset := flag.NewFlagSet("orderform", flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var (
		rateWindowStr      = cfg.RateLimitWindow.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fset.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fset.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fset.StringVar(&cfg.AccessTokenSecret, "token-secret", cfg.AccessTokenSecret, "Secret for signing access tokens")
	fset.IntVar(&cfg.RateLimitMax, "rate-limit", cfg.RateLimitMax, "Order submissions allowed per client and window")
	fset.StringVar(&rateWindowStr, "rate-window", rateWindowStr, "Order submission rate limit window")
	fset.StringVar(&cfg.RateLimitRedisURL, "redis", cfg.RateLimitRedisURL, "Redis URL for a shared rate limiter")
	fset.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fset.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log output format: json or pretty")

	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RateLimitWindow, err = time.ParseDuration(rateWindowStr); err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	for key, target := range map[string]*string{
		"ACCESS_TOKEN_SECRET_FILE": &cfg.AccessTokenSecret,
		"SMTP_PASSWORD_FILE":       &cfg.SMTP.Password,
		"ADMIN_PASSWORD_FILE":      &cfg.AdminPassword,
	} {
		if file, ok := lookup(key); ok && file != "" {
			content, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", strings.ToLower(key), err)
			}
			*target = strings.TrimSpace(string(content))
		}
	}

	if cfg.SMTP.Host == "" && cfg.SMTP.Username != "" {
		cfg.SMTP.Host = defaultSMTPHost
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = defaultAccessTokenTTL
	}

	if cfg.AdminSessionTTL <= 0 {
		cfg.AdminSessionTTL = defaultAdminSessionTTL
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = defaultRateLimitMax
	}

	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = defaultRateLimitWindow
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.VATRate < 0 || cfg.VATRate >= 1 {
		return nil, fmt.Errorf("vat rate must be within [0, 1)")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("access token secret must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
