// Package db opens the shared read-only store handle for the configured driver.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"world-report/internal/observability/metrics"
	"world-report/internal/resilience/retry"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
// Reports run one query at a time, so a single connection suffices.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    1,                // Maximum number of open connections
		MaxIdleConns:    1,                // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// Config describes how to reach the store.
type Config struct {
	// Driver is mysql, postgres or sqlite.
	Driver string
	// DSN is used as is when set. Otherwise a MySQL DSN is built from the
	// fields below.
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	ConnectAttempts int
	ConnectDelay    time.Duration
	PingTimeout     time.Duration

	Pool ConnectionConfig
}

// DriverName maps the configured driver to its database/sql driver name.
func (c Config) DriverName() (string, error) {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "", "mysql":
		return "mysql", nil
	case "postgres", "postgresql", "pgx":
		return "pgx", nil
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// DataSourceName returns the DSN handed to sql.Open.
func (c Config) DataSourceName() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	driver, err := c.DriverName()
	if err != nil {
		return "", err
	}
	if driver != "mysql" {
		return "", fmt.Errorf("DATABASE_URL is required for driver %q", c.Driver)
	}

	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.Timeout = 5 * time.Second
	return mc.FormatDSN(), nil
}

// Open opens the pool, applies the pool settings and waits until the store
// answers a ping, retrying connection failures with a fixed delay.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	driver, err := cfg.DriverName()
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DataSourceName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	db.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Pool.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Pool.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", driver),
		slog.Int("max_open_conns", cfg.Pool.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.Pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.Pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.Pool.ConnMaxIdleTime))

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	err = retry.WithBackoff(ctx, retry.DBConnectConfig(cfg.ConnectAttempts, cfg.ConnectDelay), func() error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		err := db.PingContext(pingCtx)
		metrics.RecordDBConnectAttempt(err == nil)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	RecordStats(db)
	slog.Info("database connection established successfully", slog.String("driver", driver))
	return db, nil
}

// RecordStats publishes the pool's connection counts as metrics.
func RecordStats(db *sql.DB) {
	stats := db.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
}

// ConnectionConfigFromEnv reads connection pool configuration from environment variables.
// Falls back to default values if not set.
func ConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if maxOpen := os.Getenv("DB_MAX_OPEN_CONNS"); maxOpen != "" {
		if val, err := strconv.Atoi(maxOpen); err == nil && val > 0 {
			cfg.MaxOpenConns = val
		}
	}

	if maxIdle := os.Getenv("DB_MAX_IDLE_CONNS"); maxIdle != "" {
		if val, err := strconv.Atoi(maxIdle); err == nil && val > 0 {
			cfg.MaxIdleConns = val
		}
	}

	if lifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); lifetime != "" {
		if val, err := time.ParseDuration(lifetime); err == nil && val > 0 {
			cfg.ConnMaxLifetime = val
		}
	}

	if idleTime := os.Getenv("DB_CONN_MAX_IDLE_TIME"); idleTime != "" {
		if val, err := time.ParseDuration(idleTime); err == nil && val > 0 {
			cfg.ConnMaxIdleTime = val
		}
	}

	return cfg
}
