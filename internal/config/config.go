// Package config provides configuration loading and management for the cyrel server and sync tools.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cyrel-edt/cyrel/internal/telemetry"
)

const (
	// EnvPrefix is the prefix of every environment variable read by cyrel
	EnvPrefix = "CYREL"

	// DatabasePasswordEnv is the environment variable holding the database password
	DatabasePasswordEnv = "CYREL_DATABASE_PASSWORD"

	// CelcatPasswordEnv is the environment variable holding the Celcat password
	CelcatPasswordEnv = "CYREL_CELCAT_PASSWORD"

	// JWTSecretEnv is the environment variable holding the JWT signing secret
	JWTSecretEnv = "CYREL_JWT_SECRET"
)

const (
	defaultRequestBuffer   = 100
	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxInterval     = 60 * time.Second
	defaultTokenTTL        = 24 * time.Hour
	defaultAddress         = ":8080"
	periodLayout           = "2006-01-02"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Database  *DatabaseConfig   `yaml:"database,omitempty"`
	Celcat    *CelcatConfig     `yaml:"celcat,omitempty"`
	Sync      *SyncConfig       `yaml:"sync,omitempty"`
	Auth      *AuthConfig       `yaml:"auth,omitempty"`
	Server    *ServerConfig     `yaml:"server,omitempty"`
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password
	// The file should contain only the password with optional trailing whitespace
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxOpenConns is the maximum number of open connections to the database
	MaxOpenConns int32 `yaml:"maxOpenConns,omitempty"`

	// MaxIdleConns is the minimum number of idle connections kept in the pool
	MaxIdleConns int32 `yaml:"maxIdleConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// CelcatConfig defines how to reach and authenticate against the Celcat calendar service
type CelcatConfig struct {
	// BaseURL is the calendar root, e.g. https://services-web.u-cergy.fr/calendar
	BaseURL string `yaml:"baseURL"`

	// Username is the LDAP login used for the session
	Username string `yaml:"username"`

	// PasswordFile is the path to a file containing the Celcat password
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Timeout bounds a single HTTP request (e.g. "30s")
	Timeout string `yaml:"timeout,omitempty"`
}

// SyncConfig holds the tunables of a synchronization run
type SyncConfig struct {
	// Interval enables periodic course syncs in the server when set (e.g. "6h")
	Interval string `yaml:"interval,omitempty"`

	// RequestBuffer is the capacity of the coordinator request channel
	RequestBuffer int `yaml:"requestBuffer,omitempty"`

	// Period is the calendar window fetched for every group
	Period *PeriodConfig `yaml:"period,omitempty"`

	// Backoff configures retries of course detail fetches
	Backoff *BackoffConfig `yaml:"backoff,omitempty"`
}

// PeriodConfig is a calendar window expressed as YYYY-MM-DD dates
type PeriodConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// BackoffConfig defines the exponential backoff of the course worker
type BackoffConfig struct {
	InitialInterval string `yaml:"initialInterval,omitempty"`
	MaxInterval     string `yaml:"maxInterval,omitempty"`
	// MaxElapsedTime of zero (the default) retries forever
	MaxElapsedTime string `yaml:"maxElapsedTime,omitempty"`
}

// AuthConfig defines how API tokens are signed
type AuthConfig struct {
	SecretFile string `yaml:"secretFile,omitempty"`
	TokenTTL   string `yaml:"tokenTTL,omitempty"`
}

// ServerConfig defines the HTTP listener
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// readSecret returns the secret stored in path, or the value of env when path is empty.
// The secret from file will have leading/trailing whitespace trimmed.
func readSecret(path, env string) (string, error) {
	if path != "" {
		cleanPath := filepath.Clean(path)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read secret from file %s: %w", path, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if value := os.Getenv(env); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("no secret configured: set a file or the %s environment variable", env)
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from CYREL_DATABASE_PASSWORD environment variable
func (d *DatabaseConfig) GetPassword() (string, error) {
	return readSecret(d.PasswordFile, DatabasePasswordEnv)
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
// The password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// GetPassword returns the Celcat password from PasswordFile or CYREL_CELCAT_PASSWORD
func (c *CelcatConfig) GetPassword() (string, error) {
	return readSecret(c.PasswordFile, CelcatPasswordEnv)
}

// GetTimeout returns the per-request timeout, zero meaning the client default
func (c *CelcatConfig) GetTimeout() time.Duration {
	if c == nil || c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GetSecret returns the JWT signing secret from SecretFile or CYREL_JWT_SECRET
func (a *AuthConfig) GetSecret() (string, error) {
	if a == nil {
		return readSecret("", JWTSecretEnv)
	}
	return readSecret(a.SecretFile, JWTSecretEnv)
}

// GetTokenTTL returns the lifetime of issued tokens, 24h by default
func (a *AuthConfig) GetTokenTTL() time.Duration {
	if a == nil || a.TokenTTL == "" {
		return defaultTokenTTL
	}
	d, err := time.ParseDuration(a.TokenTTL)
	if err != nil {
		return defaultTokenTTL
	}
	return d
}

// GetAddress returns the listen address, ":8080" by default
func (s *ServerConfig) GetAddress() string {
	if s == nil || s.Address == "" {
		return defaultAddress
	}
	return s.Address
}

// GetRequestBuffer returns the coordinator channel capacity, 100 by default
func (s *SyncConfig) GetRequestBuffer() int {
	if s == nil || s.RequestBuffer <= 0 {
		return defaultRequestBuffer
	}
	return s.RequestBuffer
}

// GetInterval returns the periodic sync interval; zero disables periodic syncs
func (s *SyncConfig) GetInterval() time.Duration {
	if s == nil || s.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		return 0
	}
	return d
}

// GetPeriod returns the calendar window. Without configuration it is the academic
// year (September 1st to September 1st) containing now.
func (s *SyncConfig) GetPeriod(now time.Time) (time.Time, time.Time) {
	if s != nil && s.Period != nil {
		start, errStart := time.Parse(periodLayout, s.Period.Start)
		end, errEnd := time.Parse(periodLayout, s.Period.End)
		if errStart == nil && errEnd == nil {
			return start, end
		}
	}

	year := now.Year()
	if now.Month() < time.September {
		year--
	}
	start := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// GetBackoff returns the initial interval, max interval and max elapsed time of worker retries
func (s *SyncConfig) GetBackoff() (time.Duration, time.Duration, time.Duration) {
	initial, maxInterval, maxElapsed := defaultInitialInterval, defaultMaxInterval, time.Duration(0)
	if s == nil || s.Backoff == nil {
		return initial, maxInterval, maxElapsed
	}
	if d, err := time.ParseDuration(s.Backoff.InitialInterval); err == nil {
		initial = d
	}
	if d, err := time.ParseDuration(s.Backoff.MaxInterval); err == nil {
		maxInterval = d
	}
	if d, err := time.ParseDuration(s.Backoff.MaxElapsedTime); err == nil {
		maxElapsed = d
	}
	return initial, maxInterval, maxElapsed
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses and validates a YAML configuration document
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Database == nil {
		return fmt.Errorf("database configuration is required")
	}
	if err := validateDatabaseConfig(c.Database); err != nil {
		return err
	}

	if c.Celcat != nil {
		if err := validateCelcatConfig(c.Celcat); err != nil {
			return err
		}
	}

	if c.Sync != nil {
		if err := validateSyncConfig(c.Sync); err != nil {
			return err
		}
	}

	if c.Auth != nil && c.Auth.TokenTTL != "" {
		if _, err := time.ParseDuration(c.Auth.TokenTTL); err != nil {
			return fmt.Errorf("auth.tokenTTL must be a valid duration: %w", err)
		}
	}

	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	return nil
}

// validateDatabaseConfig checks the fields needed to open a connection
func validateDatabaseConfig(db *DatabaseConfig) error {
	if db.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if db.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if db.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if db.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if db.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(db.ConnMaxLifetime); err != nil {
			return fmt.Errorf("database.connMaxLifetime must be a valid duration: %w", err)
		}
	}
	return nil
}

// validateCelcatConfig checks the remote calendar settings
func validateCelcatConfig(c *CelcatConfig) error {
	if c.BaseURL == "" {
		return fmt.Errorf("celcat.baseURL is required")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("celcat.baseURL is not a valid URL: %w", err)
	}
	if c.Username == "" {
		return fmt.Errorf("celcat.username is required")
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("celcat.timeout must be a valid duration: %w", err)
		}
	}
	return nil
}

// validateSyncConfig checks durations and the calendar window
func validateSyncConfig(s *SyncConfig) error {
	if s.Interval != "" {
		if _, err := time.ParseDuration(s.Interval); err != nil {
			return fmt.Errorf("sync.interval must be a valid duration (e.g., '30m', '6h'): %w", err)
		}
	}
	if s.RequestBuffer < 0 {
		return fmt.Errorf("sync.requestBuffer must not be negative")
	}

	if s.Period != nil {
		start, err := time.Parse(periodLayout, s.Period.Start)
		if err != nil {
			return fmt.Errorf("sync.period.start must be a YYYY-MM-DD date: %w", err)
		}
		end, err := time.Parse(periodLayout, s.Period.End)
		if err != nil {
			return fmt.Errorf("sync.period.end must be a YYYY-MM-DD date: %w", err)
		}
		if !end.After(start) {
			return fmt.Errorf("sync.period.end must be after sync.period.start")
		}
	}

	if s.Backoff != nil {
		for name, value := range map[string]string{
			"initialInterval": s.Backoff.InitialInterval,
			"maxInterval":     s.Backoff.MaxInterval,
			"maxElapsedTime":  s.Backoff.MaxElapsedTime,
		} {
			if value == "" {
				continue
			}
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("sync.backoff.%s must be a valid duration: %w", name, err)
			}
		}
	}

	return nil
}
