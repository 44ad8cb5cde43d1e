package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/GLee998/church-database-bot/internal/metrics"
)

// RetryConfig параметры повторов и таймаутов удаленных вызовов
type RetryConfig struct {
	CallTimeout      time.Duration
	BaseBackoff      time.Duration
	MaxBackoff       time.Duration
	BreakerTimeout   time.Duration
	ReadAttempts     int
	WriteAttempts    int
	BreakerThreshold uint32
}

// DefaultRetryConfig returns sane defaults for a spreadsheet API.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		CallTimeout:      10 * time.Second,
		BaseBackoff:      200 * time.Millisecond,
		MaxBackoff:       5 * time.Second,
		BreakerTimeout:   30 * time.Second,
		ReadAttempts:     4,
		WriteAttempts:    2,
		BreakerThreshold: 5,
	}
}

// Retrying wraps a Store with timeouts, exponential backoff and a circuit breaker.
// Reads are retried on ErrUnavailable up to ReadAttempts, writes up to WriteAttempts.
// ErrConflict, ErrRejected and ErrNotFound are never retried.
type Retrying struct {
	store   Store
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	metrics *metrics.Metrics
	cfg     RetryConfig
}

// NewRetrying creates a Retrying store.
func NewRetrying(store Store, cfg RetryConfig, logger *slog.Logger, m *metrics.Metrics) *Retrying {
	if cfg.ReadAttempts < 1 {
		cfg.ReadAttempts = 1
	}
	if cfg.WriteAttempts < 1 {
		cfg.WriteAttempts = 1
	}
	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "remote-store",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		// Только сбои связи открывают автомат, конфликты и отказы - нормальные ответы
		IsSuccessful: func(err error) bool {
			return err == nil || !IsRetryable(err)
		},
	})

	return &Retrying{
		store:   store,
		breaker: breaker,
		logger:  logger,
		metrics: m,
		cfg:     cfg,
	}
}

// FetchAll reads the sheet, retrying transient failures.
func (r *Retrying) FetchAll(ctx context.Context) (*Table, error) {
	var table *Table
	err := r.withRetry(ctx, "fetch", r.cfg.ReadAttempts, func(ctx context.Context) error {
		var err error
		table, err = r.store.FetchAll(ctx)
		return err
	})
	return table, err
}

// Append adds a row. A retried append whose first attempt reached the store may create a duplicate row.
func (r *Retrying) Append(ctx context.Context, fields map[string]string) (string, error) {
	var id string
	err := r.withRetry(ctx, "append", r.cfg.WriteAttempts, func(ctx context.Context) error {
		var err error
		id, err = r.store.Append(ctx, fields)
		return err
	})
	return id, err
}

// Update performs a conditional update, retrying only transient failures.
func (r *Retrying) Update(ctx context.Context, id string, baseRevision int64, fields map[string]string) (int64, error) {
	var rev int64
	err := r.withRetry(ctx, "update", r.cfg.WriteAttempts, func(ctx context.Context) error {
		var err error
		rev, err = r.store.Update(ctx, id, baseRevision, fields)
		return err
	})
	return rev, err
}

// withRetry runs operation up to attempts times with exponential backoff between tries.
func (r *Retrying) withRetry(ctx context.Context, op string, attempts int, operation func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			r.metrics.ObserveRemoteRetry(op)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, ctx.Err())
			case <-time.After(r.backoff(attempt)):
			}
		}

		err := r.once(ctx, operation)
		r.metrics.ObserveRemoteCall(op, err)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryable(err) {
			return err
		}

		r.logger.Warn("Remote call failed",
			"operation", op,
			"attempt", attempt+1,
			"max_attempts", attempts,
			"error", err)
	}

	return lastErr
}

// once runs a single attempt under CallTimeout through the circuit breaker
func (r *Retrying) once(ctx context.Context, operation func(ctx context.Context) error) error {
	callCtx := ctx
	if r.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.cfg.CallTimeout)
		defer cancel()
	}

	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, classify(operation(callCtx))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// classify помечает истечение таймаута и отмену как временную недоступность
func classify(err error) error {
	if err == nil || IsRetryable(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func (r *Retrying) backoff(attempt int) time.Duration {
	d := r.cfg.BaseBackoff * time.Duration(1<<uint(attempt-1))
	if r.cfg.MaxBackoff > 0 && d > r.cfg.MaxBackoff {
		d = r.cfg.MaxBackoff
	}
	return d
}
