package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   5 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_FirstAttemptSucceeds(t *testing.T) {
	calls := 0

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_StoreComesUp(t *testing.T) {
	calls := 0

	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return syscall.ECONNREFUSED
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoff_MaxAttemptsExceeded(t *testing.T) {
	calls := 0

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return driver.ErrBadConn
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, driver.ErrBadConn)
	assert.Contains(t, err.Error(), "max retry attempts (3) exceeded")
}

func TestWithBackoff_NonRetryableStopsImmediately(t *testing.T) {
	accessDenied := &mysql.MySQLError{Number: 1045, Message: "Access denied for user 'root'"}
	calls := 0

	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		return accessDenied
	})

	assert.Equal(t, 1, calls)
	assert.Same(t, accessDenied, err)
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := DBConnectConfig(100, time.Hour)
	calls := 0

	done := make(chan error, 1)
	go func() {
		done <- WithBackoff(ctx, cfg, func() error {
			calls++
			return syscall.ECONNREFUSED
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "retry aborted")
	case <-time.After(time.Second):
		t.Fatal("WithBackoff did not return after cancel")
	}
	assert.Equal(t, 1, calls)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "bad conn", err: driver.ErrBadConn, want: true},
		{name: "mysql invalid conn", err: mysql.ErrInvalidConn, want: true},
		{name: "wrapped refused", err: fmt.Errorf("dial: %w", syscall.ECONNREFUSED), want: true},
		{name: "reset", err: syscall.ECONNRESET, want: true},
		{name: "unreachable", err: syscall.ENETUNREACH, want: true},
		{name: "net timeout", err: &net.OpError{Op: "dial", Err: timeoutErr{}}, want: true},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "db", IsNotFound: true}, want: true},
		{name: "access denied", err: &mysql.MySQLError{Number: 1045, Message: "Access denied"}, want: false},
		{name: "plain error", err: errors.New("syntax error"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestDBConnectConfig(t *testing.T) {
	cfg := DBConnectConfig(100, time.Second)

	assert.Equal(t, 100, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.InitialDelay)
	assert.Equal(t, time.Second, cfg.MaxDelay)
	assert.Equal(t, 1.0, cfg.Multiplier)
	assert.Zero(t, cfg.JitterFraction)

	assert.Equal(t, 1, DBConnectConfig(0, time.Second).MaxAttempts)
	assert.Equal(t, 1, DBConnectConfig(-3, time.Second).MaxAttempts)
}

func TestNextDelay(t *testing.T) {
	fixed := DBConnectConfig(10, time.Second)
	assert.Equal(t, time.Second, nextDelay(time.Second, fixed))

	grow := Config{Multiplier: 2, MaxDelay: 3 * time.Second}
	assert.Equal(t, 2*time.Second, nextDelay(time.Second, grow))
	assert.Equal(t, 3*time.Second, nextDelay(2*time.Second, grow))
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond

	for i := 0; i < 50; i++ {
		got := addJitter(base, 0.5)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/2)
	}

	assert.Equal(t, base, addJitter(base, 0))
	assert.LessOrEqual(t, addJitter(base, 5), 2*base)
}
