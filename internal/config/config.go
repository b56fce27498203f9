// Package config loads the application configuration from environment
// variables layered over an optional YAML file, with validated defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Market   MarketConfig   `yaml:"market" envconfig:"MARKET"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths. The snapshots directory is the
// hand-off point from the scraper: one JSON file per competitor hotel, plus
// the user hotel's rates file.
type PathsConfig struct {
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	SnapshotsDir  string `yaml:"snapshots_dir" envconfig:"SNAPSHOTS_DIR" default:"data/snapshots"`
	UserRatesFile string `yaml:"user_rates_file" envconfig:"USER_RATES_FILE" default:"data/user_rates.json"`
	ReportsDir    string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// MarketConfig describes the market the comparisons run in
type MarketConfig struct {
	// BusinessTimezone is the fixed calendar reference for "today" in all
	// date-bucketed comparisons, independent of server local time.
	BusinessTimezone string `yaml:"business_timezone" envconfig:"BUSINESS_TIMEZONE" default:"America/Tijuana"`
	City             string `yaml:"city" envconfig:"CITY" default:"Tijuana"`
	UserHotel        string `yaml:"user_hotel" envconfig:"USER_HOTEL" default:"Our Hotel"`
	// Currency and ExchangeRate are display hints passed through to the
	// caller; all engine arithmetic stays in the stored base unit.
	Currency     string  `yaml:"currency" envconfig:"CURRENCY" default:"MXN"`
	ExchangeRate float64 `yaml:"exchange_rate" envconfig:"EXCHANGE_RATE" default:"1"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("RATEPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge fills zero-valued env fields from the file config (env wins)
func merge(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Paths.SnapshotsDir == "" {
		envConfig.Paths.SnapshotsDir = fileConfig.Paths.SnapshotsDir
	}
	if envConfig.Paths.UserRatesFile == "" {
		envConfig.Paths.UserRatesFile = fileConfig.Paths.UserRatesFile
	}
	if envConfig.Market.BusinessTimezone == "" {
		envConfig.Market.BusinessTimezone = fileConfig.Market.BusinessTimezone
	}
	if envConfig.Market.City == "" {
		envConfig.Market.City = fileConfig.Market.City
	}
	if envConfig.Market.ExchangeRate == 0 {
		envConfig.Market.ExchangeRate = fileConfig.Market.ExchangeRate
	}
	return envConfig
}

// EnsureDirectories creates the writable directories the service needs
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.SnapshotsDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportPath resolves a report filename inside the reports directory
func (c *Config) ReportPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.ReportsDir, name)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Market.BusinessTimezone == "" {
		return fmt.Errorf("business timezone must be set")
	}
	if c.Market.ExchangeRate < 0 {
		return fmt.Errorf("exchange rate must not be negative")
	}

	// Logging is always JSON to keep log shippers happy.
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// findConfigFile returns the path to the config file, if any
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:       "data",
			SnapshotsDir:  "data/snapshots",
			UserRatesFile: "data/user_rates.json",
			ReportsDir:    "reports",
			LogsDir:       "logs",
		},
		Market: MarketConfig{
			BusinessTimezone: "America/Tijuana",
			City:             "Tijuana",
			UserHotel:        "Our Hotel",
			Currency:         "MXN",
			ExchangeRate:     1,
		},
	}
}
