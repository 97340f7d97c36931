package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverPostgres DatabaseDriver = "postgres"
	DriverSQLite   DatabaseDriver = "sqlite"
)

// Config holds the configuration for the forum server.
type Config struct {
	// Listen is the address the HTTP server listens on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// GinMode is passed to gin.SetMode ("debug", "release" or "test").
	GinMode string `yaml:"gin_mode" mapstructure:"gin_mode"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Auth holds token and session settings.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Pagination controls list page sizes.
	Pagination *PaginationConfig `yaml:"pagination" mapstructure:"pagination"`
	// CORS holds the cross-origin settings for API clients.
	CORS *CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Driver selects the backend: "postgres" or "sqlite".
	Driver DatabaseDriver `yaml:"driver" mapstructure:"driver"`
	// DSN is the postgres connection string. Both key/value and postgres:// URL forms are accepted.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
	// Path is the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
	// MaxIdleConns is the maximum number of idle pooled connections.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	// ConnMaxLifetime is how long a connection may be reused.
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	// SlowQueryThreshold is the duration above which queries are logged as slow.
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" mapstructure:"slow_query_threshold"`
}

// AuthConfig holds the token and session configuration.
type AuthConfig struct {
	// JWTSecret signs bearer tokens.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// TokenTTL is the lifetime of issued bearer tokens.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	// SessionKey is the key used to sign session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a browser session.
	SessionMaxAge time.Duration `yaml:"session_max_age" mapstructure:"session_max_age"`
	// SecureCookies marks the session cookie as Secure.
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	// BcryptCost is the cost used when hashing passwords.
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

type PaginationConfig struct {
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, the default search paths are used and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("QANDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.qanda")
		v.AddConfigPath("/etc/qanda")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("no config file found, using defaults and environment")
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("gin_mode", "release")

	v.SetDefault("database.driver", string(DriverSQLite))
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.path", "./data/qanda.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.slow_query_threshold", time.Second)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 72*time.Hour)
	v.SetDefault("auth.session_key", "")
	v.SetDefault("auth.session_max_age", 48*time.Hour)
	v.SetDefault("auth.secure_cookies", false)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("pagination.page_size", 5)

	v.SetDefault("cors.allow_origins", []string{"*"})
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing config")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.Database == nil {
		return fmt.Errorf("missing database config")
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required when using postgres")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required when using sqlite")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.Auth == nil {
		return fmt.Errorf("missing auth config")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Auth.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}

	if c.Pagination == nil || c.Pagination.PageSize <= 0 {
		return fmt.Errorf("page size must be greater than 0")
	}

	if c.CORS == nil {
		c.CORS = &CORSConfig{AllowOrigins: []string{"*"}}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Database != nil {
		c.Database.Driver = DatabaseDriver(strings.ToLower(strings.TrimSpace(string(c.Database.Driver))))
		c.Database.DSN = strings.TrimSpace(c.Database.DSN)
	}
}

// GetPageSize returns the page size with proper defaults.
func (c *Config) GetPageSize() int {
	if c == nil || c.Pagination == nil || c.Pagination.PageSize <= 0 {
		return 5
	}
	return c.Pagination.PageSize
}
