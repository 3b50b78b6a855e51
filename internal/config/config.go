// Package config assembles the report tool's configuration from defaults,
// an optional YAML file, an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pkgconfig "world-report/internal/pkg/config"
	envconfig "world-report/pkg/config"
)

// Metrics tracks configuration loads and fallbacks.
var Metrics = pkgconfig.NewConfigMetrics("report")

// Config holds every setting of the report tool.
type Config struct {
	Database       DatabaseConfig       `yaml:"database"`
	Report         ReportConfig         `yaml:"report"`
	Log            LogConfig            `yaml:"log"`
	Metrics        MetricsConfig        `yaml:"metrics"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// DatabaseConfig describes the store connection.
type DatabaseConfig struct {
	// Driver is mysql, postgres or sqlite. Default: mysql
	Driver string `yaml:"driver"`
	// URL is a raw DSN. When empty a MySQL DSN is built from the fields below.
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`

	// ConnectAttempts bounds the startup ping loop. Default: 100
	ConnectAttempts int `yaml:"connect_attempts"`
	// ConnectDelay is the pause between pings. Default: 1s
	ConnectDelay time.Duration `yaml:"connect_delay"`
	// MaxOpenConns sizes the pool. Default: 1
	MaxOpenConns int `yaml:"max_open_conns"`
}

// ReportConfig controls report files and the language report.
type ReportConfig struct {
	// Dir receives Markdown reports. Default: /app/reports
	Dir string `yaml:"dir"`
	// Write saves every rendered report as Markdown. Default: false
	Write bool `yaml:"write"`
	// Languages covered by the language report.
	Languages []string `yaml:"languages"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// CircuitBreakerConfig tunes the breaker around the store handle.
type CircuitBreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failure_threshold"`
	MinRequests      uint32        `yaml:"min_requests"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          "mysql",
			Host:            "db",
			Port:            3306,
			User:            "root",
			Password:        "example",
			Name:            "world",
			ConnectAttempts: 100,
			ConnectDelay:    time.Second,
			MaxOpenConns:    1,
		},
		Report: ReportConfig{
			Dir:       "/app/reports",
			Languages: []string{"Chinese", "English", "Hindi", "Spanish", "Arabic"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Port: 9090,
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 1.0,
			MinRequests:      5,
		},
	}
}

// Load builds the configuration. A .env file in the working directory is
// preloaded when present; REPORT_CONFIG_FILE names an optional YAML file.
// Environment values override YAML values, which override defaults.
// Invalid environment values fall back with a warning; the assembled
// configuration must then pass Validate.
func Load() (*Config, []string, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}

	cfg := Default()
	if path := envconfig.GetEnvString("REPORT_CONFIG_FILE", ""); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, nil, err
		}
	}

	warnings := cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		Metrics.RecordValidationError("config")
		return nil, warnings, fmt.Errorf("invalid configuration: %w", err)
	}

	Metrics.RecordLoadTimestamp()
	Metrics.SetFallbackActive(len(warnings) > 0)
	return cfg, warnings, nil
}

// LoadDotEnv loads the named .env files into the environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) loadYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() []string {
	var warnings []string
	load := func(field string, r pkgconfig.ConfigLoadResult) any {
		Metrics.Observe(field, r)
		warnings = append(warnings, r.Warnings...)
		return r.Value
	}

	positive := pkgconfig.ValidatePositiveDuration
	port := func(v int) error { return pkgconfig.ValidateIntRange(v, 1, 65535) }
	atLeastOne := func(v int) error { return pkgconfig.ValidateIntRange(v, 1, 1_000_000) }
	connectDelay := func(d time.Duration) error {
		return pkgconfig.ValidateDuration(d, 10*time.Millisecond, time.Minute)
	}
	breakerTimeout := func(d time.Duration) error {
		return pkgconfig.ValidateDuration(d, time.Second, 10*time.Minute)
	}

	db := &c.Database
	db.Driver = load("db_driver", pkgconfig.LoadEnvWithFallback("DB_DRIVER", db.Driver,
		pkgconfig.ValidateOneOf("mysql", "postgres", "postgresql", "pgx", "sqlite", "sqlite3"))).(string)
	db.URL = pkgconfig.LoadEnvString("DATABASE_URL", db.URL)
	db.Host = pkgconfig.LoadEnvString("DB_HOST", db.Host)
	db.Port = load("db_port", pkgconfig.LoadEnvInt("DB_PORT", db.Port, port)).(int)
	db.User = pkgconfig.LoadEnvString("DB_USER", db.User)
	db.Password = pkgconfig.LoadEnvString("DB_PASSWORD", db.Password)
	db.Name = pkgconfig.LoadEnvString("DB_NAME", db.Name)
	db.ConnectAttempts = load("db_connect_attempts",
		pkgconfig.LoadEnvInt("DB_CONNECT_ATTEMPTS", db.ConnectAttempts, atLeastOne)).(int)
	db.ConnectDelay = load("db_connect_delay",
		pkgconfig.LoadEnvDuration("DB_CONNECT_DELAY", db.ConnectDelay, connectDelay)).(time.Duration)
	db.MaxOpenConns = load("db_max_open_conns",
		pkgconfig.LoadEnvInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns, atLeastOne)).(int)

	c.Report.Dir = pkgconfig.LoadEnvString("REPORT_DIR", c.Report.Dir)
	c.Report.Write = load("report_write", pkgconfig.LoadEnvBool("REPORT_WRITE", c.Report.Write)).(bool)
	c.Report.Languages = envconfig.GetEnvStringList("REPORT_LANGUAGES", c.Report.Languages)

	c.Log.Level = load("log_level", pkgconfig.LoadEnvWithFallback("LOG_LEVEL", c.Log.Level,
		pkgconfig.ValidateOneOf("debug", "info", "warn", "error"))).(string)
	c.Log.Format = load("log_format", pkgconfig.LoadEnvWithFallback("LOG_FORMAT", c.Log.Format,
		pkgconfig.ValidateOneOf("json", "text"))).(string)

	c.Metrics.Enabled = load("metrics_enabled", pkgconfig.LoadEnvBool("METRICS_ENABLED", c.Metrics.Enabled)).(bool)
	c.Metrics.Port = load("metrics_port", pkgconfig.LoadEnvInt("METRICS_PORT", c.Metrics.Port, port)).(int)

	cb := &c.CircuitBreaker
	cb.MaxRequests = uint32(load("db_cb_max_requests",
		pkgconfig.LoadEnvInt("DB_CB_MAX_REQUESTS", int(cb.MaxRequests), atLeastOne)).(int))
	cb.Interval = load("db_cb_interval",
		pkgconfig.LoadEnvDuration("DB_CB_INTERVAL", cb.Interval, positive)).(time.Duration)
	cb.Timeout = load("db_cb_timeout",
		pkgconfig.LoadEnvDuration("DB_CB_TIMEOUT", cb.Timeout, breakerTimeout)).(time.Duration)
	cb.FailureThreshold = load("db_cb_failure_threshold",
		pkgconfig.LoadEnvFloat("DB_CB_FAILURE_THRESHOLD", cb.FailureThreshold, pkgconfig.ValidateRatio)).(float64)
	cb.MinRequests = uint32(load("db_cb_min_requests",
		pkgconfig.LoadEnvInt("DB_CB_MIN_REQUESTS", int(cb.MinRequests), atLeastOne)).(int))

	return warnings
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if err := pkgconfig.ValidateOneOf("mysql", "postgres", "postgresql", "pgx", "sqlite", "sqlite3")(c.Database.Driver); err != nil {
		return fmt.Errorf("DB_DRIVER: %w", err)
	}

	isMySQL := strings.EqualFold(c.Database.Driver, "mysql")
	if c.Database.URL == "" && !isMySQL {
		return fmt.Errorf("DATABASE_URL is required for driver %s", c.Database.Driver)
	}

	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST cannot be empty")
		}
		if err := pkgconfig.ValidateIntRange(c.Database.Port, 1, 65535); err != nil {
			return fmt.Errorf("DB_PORT: %w", err)
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME cannot be empty")
		}
	}

	if c.Database.ConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1")
	}

	if c.Database.ConnectDelay <= 0 {
		return fmt.Errorf("DB_CONNECT_DELAY must be positive")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}

	if c.Report.Write && c.Report.Dir == "" {
		return fmt.Errorf("REPORT_DIR cannot be empty when REPORT_WRITE is set")
	}

	if c.Metrics.Enabled {
		if err := pkgconfig.ValidateIntRange(c.Metrics.Port, 1, 65535); err != nil {
			return fmt.Errorf("METRICS_PORT: %w", err)
		}
	}

	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("DB_CB_MAX_REQUESTS must be positive")
	}

	if c.CircuitBreaker.Interval <= 0 {
		return fmt.Errorf("DB_CB_INTERVAL must be positive")
	}

	if c.CircuitBreaker.Timeout <= 0 {
		return fmt.Errorf("DB_CB_TIMEOUT must be positive")
	}

	if err := pkgconfig.ValidateRatio(c.CircuitBreaker.FailureThreshold); err != nil {
		return fmt.Errorf("DB_CB_FAILURE_THRESHOLD: %w", err)
	}

	return nil
}
