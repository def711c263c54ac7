package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application level configuration. Values come from an optional
// YAML file and are then overridden by environment variables.
type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port        string `yaml:"port"`
	SwaggerHost string `yaml:"swagger_host"`
	ResetDB     bool   `yaml:"reset_db"`
}

type GatewayConfig struct {
	Port      string          `yaml:"port"`
	ServerURL string          `yaml:"server_url"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type DatabaseConfig struct {
	// Driver is either "mysql" or "sqlite".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	UserTTL  time.Duration `yaml:"user_ttl"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

const defaultMySQLDSN = "user:password@tcp(localhost:3306)/shareit?charset=utf8mb4&parseTime=True&loc=UTC"

// Load builds Config from the YAML file at path (skipped when path is empty),
// a .env file in the working directory if present, and the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.SwaggerHost = getEnv("SWAGGER_HOST", c.Server.SwaggerHost)
	c.Server.ResetDB = getEnvBool("RESET_DB", c.Server.ResetDB)

	c.Gateway.Port = getEnv("GATEWAY_PORT", c.Gateway.Port)
	c.Gateway.ServerURL = getEnv("SHAREIT_SERVER_URL", c.Gateway.ServerURL)
	c.Gateway.Timeout = getEnvDuration("GATEWAY_TIMEOUT", c.Gateway.Timeout)
	c.Gateway.RateLimit.Burst = getEnvInt("GATEWAY_RATE_BURST", c.Gateway.RateLimit.Burst)
	if v := os.Getenv("GATEWAY_RATE_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Gateway.RateLimit.RPS = parsed
		}
	}

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_DSN", c.Database.DSN)

	c.Redis.Address = getEnv("REDIS_ADDR", c.Redis.Address)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)

	c.Monitoring.PrometheusEnabled = getEnvBool("PROMETHEUS_ENABLED", c.Monitoring.PrometheusEnabled)
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "shareit"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Server.Port == "" {
		c.Server.Port = "9090"
	}
	if c.Gateway.Port == "" {
		c.Gateway.Port = "8080"
	}
	if c.Gateway.ServerURL == "" {
		c.Gateway.ServerURL = "http://localhost:9090"
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = 10 * time.Second
	}
	if c.Gateway.RateLimit.RPS == 0 {
		c.Gateway.RateLimit.RPS = 20
	}
	if c.Gateway.RateLimit.Burst == 0 {
		c.Gateway.RateLimit.Burst = 5
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.DSN == "" && c.Database.Driver == "mysql" {
		c.Database.DSN = defaultMySQLDSN
	}
	if c.Redis.Address == "" {
		c.Redis.Address = "localhost:6379"
	}
	if c.Redis.UserTTL == 0 {
		c.Redis.UserTTL = 5 * time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate checks the values that can not be defaulted.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if !strings.HasPrefix(c.Gateway.ServerURL, "http://") && !strings.HasPrefix(c.Gateway.ServerURL, "https://") {
		return fmt.Errorf("gateway server url must be http(s): %q", c.Gateway.ServerURL)
	}
	if c.Gateway.RateLimit.RPS < 0 || c.Gateway.RateLimit.Burst < 0 {
		return errors.New("gateway rate limit must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
