// Package resilience keeps the report tool usable while its database is slow
// to start or unavailable.
//
// Subpackages:
//   - retry: connect-at-startup loop with a fixed or growing delay
//   - circuitbreaker: breaker around the shared read-only store handle
//
// Usage Example:
//
//	err := retry.WithBackoff(ctx, retry.DBConnectConfig(100, time.Second), func() error {
//	    return db.PingContext(ctx)
//	})
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	rows, err := guarded.QueryContext(ctx, "SELECT 1")
package resilience
