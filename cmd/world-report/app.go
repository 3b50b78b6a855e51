package main

import (
	"context"
	"fmt"
	"log/slog"

	"world-report/internal/config"
	sqlstore "world-report/internal/infra/adapter/persistence/sqlstore"
	"world-report/internal/infra/db"
	"world-report/internal/infra/markdown"
	"world-report/internal/menu"
	"world-report/internal/query"
	"world-report/internal/resilience/circuitbreaker"
	"world-report/internal/usecase/report"
)

// app holds the wired collaborators of one process run.
type app struct {
	runner menu.Runner
	// saver is nil when report writing is disabled.
	saver menu.Saver
	close func() error
}

func (a *app) shutdown(logger *slog.Logger) {
	if a == nil || a.close == nil {
		return
	}
	if err := a.close(); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
	}
}

// appFactory builds the app once configuration is final.
type appFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error)

// newApp connects to the store and wires the report stack.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	dbCfg := storeConfig(cfg)
	driver, err := dbCfg.DriverName()
	if err != nil {
		return nil, err
	}
	dialect, err := query.DialectForDriver(driver)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(ctx, dbCfg)
	if err != nil {
		return nil, err
	}

	breaker := circuitbreaker.NewDBCircuitBreakerWithConfig(database, circuitbreaker.Config{
		Name:             "database",
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         cfg.CircuitBreaker.Interval,
		Timeout:          cfg.CircuitBreaker.Timeout,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
		MinRequests:      cfg.CircuitBreaker.MinRequests,
	})

	repo := sqlstore.NewReportRepo(breaker, query.NewSelector(dialect, cfg.Report.Languages))
	a := &app{
		runner: &report.Service{Repo: repo},
		close: func() error {
			db.RecordStats(database)
			if err := database.Close(); err != nil {
				return fmt.Errorf("close database: %w", err)
			}
			return nil
		},
	}
	if cfg.Report.Write {
		a.saver = markdown.NewWriter(cfg.Report.Dir, logger)
	}

	logger.Info("report stack ready",
		slog.String("driver", driver),
		slog.Bool("write_reports", cfg.Report.Write),
		slog.String("report_dir", cfg.Report.Dir))
	return a, nil
}

func storeConfig(cfg *config.Config) db.Config {
	pool := db.ConnectionConfigFromEnv()
	pool.MaxOpenConns = cfg.Database.MaxOpenConns
	if pool.MaxIdleConns > pool.MaxOpenConns {
		pool.MaxIdleConns = pool.MaxOpenConns
	}

	return db.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.URL,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		ConnectAttempts: cfg.Database.ConnectAttempts,
		ConnectDelay:    cfg.Database.ConnectDelay,
		Pool:            pool,
	}
}
