package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Warden.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SecurityConfig contains token and cookie settings.
type SecurityConfig struct {
	Tokens TokenConfig  `yaml:"tokens"`
	Cookie CookieConfig `yaml:"cookie"`
}

// TokenConfig contains session token signing settings.
//
// AccessSecret and RenewalSecret are independent process-wide secrets.
// They sign the two token types separately so that compromise of one
// never compromises the other; validation rejects identical values.
// TTLs are in minutes.
type TokenConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RenewalSecret string `yaml:"renewal_secret"`
	AccessTTL     int    `yaml:"access_ttl"`
	RenewalTTL    int    `yaml:"renewal_ttl"`
}

// CookieConfig controls the renewal-token cookie. The cookie is always
// HTTP-only; Secure and SameSite are configurable for local development
// but default to the production-safe values.
type CookieConfig struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Domain   string `yaml:"domain"`
	Secure   bool   `yaml:"secure"`
	SameSite string `yaml:"same_site"` // none, lax, or strict
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: WARDEN_SECTION_KEY
// For example: WARDEN_DATABASE_PATH, WARDEN_ACCESS_SECRET
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
// Token lifetimes follow the session design: 15 minutes access, 7 days renewal.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "./data/warden.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Security: SecurityConfig{
			Tokens: TokenConfig{
				AccessTTL:  15,
				RenewalTTL: 7 * 24 * 60,
			},
			Cookie: CookieConfig{
				Name:     "refreshToken",
				Path:     "/api/v1/auth",
				Secure:   true,
				SameSite: "none",
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: WARDEN_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("WARDEN_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// API
	if v := os.Getenv("WARDEN_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("WARDEN_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Security: signing secrets (always override these in production)
	if v := os.Getenv("WARDEN_ACCESS_SECRET"); v != "" {
		cfg.Security.Tokens.AccessSecret = v
	}
	if v := os.Getenv("WARDEN_RENEWAL_SECRET"); v != "" {
		cfg.Security.Tokens.RenewalSecret = v
	}
}

// minSecretLength is the minimum length for a token signing secret.
const minSecretLength = 32

// Validate checks the configuration for errors and security issues.
func (c *Config) Validate() error {
	var errs []string

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// Token secrets are REQUIRED and must be independent. A missing or
	// shared secret is a startup-fatal misconfiguration: every session
	// token in the system derives its integrity from these values.
	tokens := c.Security.Tokens
	switch {
	case tokens.AccessSecret == "":
		errs = append(errs, "security.tokens.access_secret is required (set WARDEN_ACCESS_SECRET)")
	case len(tokens.AccessSecret) < minSecretLength:
		errs = append(errs, "security.tokens.access_secret must be at least 32 characters")
	}
	switch {
	case tokens.RenewalSecret == "":
		errs = append(errs, "security.tokens.renewal_secret is required (set WARDEN_RENEWAL_SECRET)")
	case len(tokens.RenewalSecret) < minSecretLength:
		errs = append(errs, "security.tokens.renewal_secret must be at least 32 characters")
	}
	if tokens.AccessSecret != "" && tokens.AccessSecret == tokens.RenewalSecret {
		errs = append(errs, "security.tokens.access_secret and renewal_secret must differ")
	}

	if tokens.AccessTTL <= 0 {
		errs = append(errs, "security.tokens.access_ttl must be positive")
	}
	if tokens.RenewalTTL <= 0 {
		errs = append(errs, "security.tokens.renewal_ttl must be positive")
	}

	// Cookie validation
	if c.Security.Cookie.Name == "" {
		errs = append(errs, "security.cookie.name is required")
	}
	switch strings.ToLower(c.Security.Cookie.SameSite) {
	case "none":
		// Browsers drop SameSite=None cookies that are not also Secure
		if !c.Security.Cookie.Secure {
			errs = append(errs, "security.cookie.same_site=none requires security.cookie.secure=true")
		}
	case "lax", "strict":
	default:
		errs = append(errs, "security.cookie.same_site must be none, lax, or strict")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// AccessTokenTTL returns the access token lifetime as a Duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Security.Tokens.AccessTTL) * time.Minute
}

// RenewalTokenTTL returns the renewal token lifetime as a Duration.
func (c *Config) RenewalTokenTTL() time.Duration {
	return time.Duration(c.Security.Tokens.RenewalTTL) * time.Minute
}

// ReadDuration returns the read timeout as a Duration.
func (t APITimeoutConfig) ReadDuration() time.Duration {
	return time.Duration(t.Read) * time.Second
}

// WriteDuration returns the write timeout as a Duration.
func (t APITimeoutConfig) WriteDuration() time.Duration {
	return time.Duration(t.Write) * time.Second
}

// IdleDuration returns the idle timeout as a Duration.
func (t APITimeoutConfig) IdleDuration() time.Duration {
	return time.Duration(t.Idle) * time.Second
}
