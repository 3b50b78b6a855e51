// Package circuitbreaker guards the shared store handle with a circuit
// breaker (github.com/sony/gobreaker). While the store keeps failing, report
// queries fail fast instead of waiting on a dead connection.
package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"world-report/internal/observability/metrics"
	"world-report/internal/repository"
)

// Config holds the breaker settings.
type Config struct {
	// Name labels logs and metrics.
	Name string

	// MaxRequests is the number of probes let through while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker,
	// e.g. 1.0 trips only when every counted query failed.
	FailureThreshold float64

	// MinRequests is the number of queries counted before the ratio applies.
	MinRequests uint32

	// IsSuccessful classifies errors that must not count as failures.
	// Nil keeps the default: success or caller cancellation.
	IsSuccessful func(err error) bool
}

// DBConfig returns the defaults for the store breaker: open after 5
// consecutive failures, probe again after 30 seconds.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// isStoreHealthy treats caller cancellation as a healthy store.
func isStoreHealthy(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// DBCircuitBreaker implements repository.Querier over a *sql.DB.
type DBCircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
	db   *sql.DB
}

var _ repository.Querier = (*DBCircuitBreaker)(nil)

// NewDBCircuitBreaker guards db with DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig guards db with cfg.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = isStoreHealthy
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.RecordBreakerState(name, int(to))
		},
		IsSuccessful: cfg.IsSuccessful,
	}

	metrics.RecordBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &DBCircuitBreaker{
		cb:   gobreaker.NewCircuitBreaker(settings),
		name: cfg.Name,
		db:   db,
	}
}

// QueryContext runs the query unless the breaker is open, in which case it
// returns gobreaker.ErrOpenState (or ErrTooManyRequests while half-open)
// without touching the store.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordBreakerRejection(dcb.name)
		}
		return nil, err
	}

	return result.(*sql.Rows), nil
}

// State returns the current breaker state.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen reports whether queries are currently refused.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.State() == gobreaker.StateOpen
}

// DB returns the guarded handle.
func (dcb *DBCircuitBreaker) DB() *sql.DB {
	return dcb.db
}
