package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go-recordshop/pkg/database"
)

// DefaultJWTSecret is the JWT_SECRET default. It is public, so it is refused when
// AUTH_ENFORCE is on.
const DefaultJWTSecret = "your-super-secret-key-change-in-production"

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	AppName string `yaml:"app_name" env:"APP_NAME" env-default:"Record Shop API"`
	Port    string `yaml:"port"     env:"PORT"     env-default:"3000"`
}

// StoreConfig selects where records live.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"memory"`
	Seed   bool   `yaml:"seed"   env:"STORE_SEED"   env-default:"true"`
}

// DatabaseConfig is only read when Store.Driver is postgres.
type DatabaseConfig struct {
	URL      string `yaml:"url"      env:"DATABASE_URL"`
	Host     string `yaml:"host"     env:"DB_HOST"     env-default:"localhost"`
	User     string `yaml:"user"     env:"DB_USER"     env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name"     env:"DB_NAME"     env-default:"recordshop"`
	Port     string `yaml:"port"     env:"DB_PORT"     env-default:"5432"`
}

// AuthConfig holds token and access-control settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"your-super-secret-key-change-in-production"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"JWT_ISSUER" env-default:"go-recordshop"`
	JWTTTL    time.Duration `yaml:"jwt_ttl"    env:"JWT_TTL"    env-default:"24h"`
	// Enforce turns on bearer-token checks and role privileges for /api/records.
	Enforce bool `yaml:"enforce" env:"AUTH_ENFORCE" env-default:"false"`
	// LoginRateLimit is login attempts per second per IP; 0 disables limiting.
	LoginRateLimit float64 `yaml:"login_rate_limit" env:"LOGIN_RATE_LIMIT" env-default:"0"`
	LoginBurst     int     `yaml:"login_burst"      env:"LOGIN_BURST"      env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// DB converts the database section for pkg/database.
func (c DatabaseConfig) DB() database.Config {
	return database.Config{
		URL:      c.URL,
		Host:     c.Host,
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
		Port:     c.Port,
	}
}

var (
	validDrivers = []string{DriverMemory, DriverPostgres}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
)

// Validate checks values that env-default tags cannot constrain.
func (c *Config) Validate() error {
	if !slices.Contains(validDrivers, c.Store.Driver) {
		return fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port: must not be empty")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret: must not be empty")
	}
	if c.Auth.Enforce && c.Auth.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("auth.jwt_secret: must be set when auth.enforce is on")
	}
	if c.Auth.JWTTTL <= 0 {
		return fmt.Errorf("auth.jwt_ttl: must be positive")
	}
	if c.Auth.LoginRateLimit < 0 {
		return fmt.Errorf("auth.login_rate_limit: must not be negative")
	}
	if c.Auth.LoginRateLimit > 0 && c.Auth.LoginBurst < 1 {
		return fmt.Errorf("auth.login_burst: must be at least 1")
	}
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}
