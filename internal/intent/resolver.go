package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/GLee998/church-database-bot/internal/metrics"
	"github.com/GLee998/church-database-bot/internal/models"
)

// MaxQuestionLength longest accepted question in characters
const MaxQuestionLength = 500

// Config параметры обращения к AI сервису
type Config struct {
	Timeout          time.Duration
	RatePerSecond    float64
	Burst            int
	BreakerThreshold uint32
	BreakerTimeout   time.Duration
}

// Resolver turns a question into a validated QueryIntent.
// The AI answer is only ever used as a pointer into the closed vocabulary; its text is never returned.
type Resolver struct {
	svc         Service
	schema      *models.Schema
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker
	logger      *slog.Logger
	metrics     *metrics.Metrics
	description string
	timeout     time.Duration
}

// NewResolver creates a Resolver. The schema description is rendered once and sent with every call.
func NewResolver(svc Service, schema *models.Schema, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "intent-service",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Resolver{
		svc:         svc,
		schema:      schema,
		limiter:     rate.NewLimiter(limit, burst),
		breaker:     breaker,
		logger:      logger,
		metrics:     m,
		description: Describe(schema),
		timeout:     timeout,
	}
}

// Resolve asks the AI service for an intent and validates it.
// If ctx is done first, Resolve returns early; the AI call itself keeps running under
// its own timeout and its answer is discarded.
func (r *Resolver) Resolve(ctx context.Context, question string) (*models.QueryIntent, error) {
	qi, err := r.resolve(ctx, question)
	r.metrics.ObserveIntent(outcome(err))
	return qi, err
}

func (r *Resolver) resolve(ctx context.Context, question string) (*models.QueryIntent, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", ErrUnrecognizedIntent)
	}
	if utf8.RuneCountInString(question) > MaxQuestionLength {
		return nil, fmt.Errorf("%w: question longer than %d characters", ErrInvalidIntent, MaxQuestionLength)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %v", ErrUnavailable, err)
	}

	raw, err := r.call(ctx, question)
	if err != nil {
		return nil, err
	}

	parsed, err := Parse(raw, r.schema)
	if err != nil {
		r.logger.Info("Question not understood", "error", err)
		return nil, err
	}

	qi, err := Validate(parsed, r.schema)
	if err != nil {
		r.logger.Info("Intent rejected", "operation", parsed.Operation, "error", err)
		return nil, err
	}

	r.logger.Debug("Intent resolved", "operation", qi.Operation, "predicates", len(qi.Predicates))
	return qi, nil
}

type callResult struct {
	err error
	raw string
}

// call runs the AI request detached from the caller's cancellation
func (r *Resolver) call(ctx context.Context, question string) (string, error) {
	done := make(chan callResult, 1)

	go func() {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		out, err := r.breaker.Execute(func() (interface{}, error) {
			return r.svc.ResolveIntent(callCtx, question, r.description)
		})
		if err != nil {
			done <- callResult{err: classify(err)}
			return
		}
		done <- callResult{raw: out.(string)}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: caller gave up: %w", ErrUnavailable, ctx.Err())
	case res := <-done:
		return res.raw, res.err
	}
}

func classify(err error) error {
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnrecognizedIntent):
		return "unrecognized"
	case errors.Is(err, ErrInvalidIntent):
		return "invalid"
	default:
		return "unavailable"
	}
}
