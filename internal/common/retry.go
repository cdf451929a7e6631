package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryOptions configures WithRetry. Zero fields take their value from
// DefaultRetryOptions.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// Operation names the call in retry logs.
	Operation string
	// Classify runs on every failed attempt before it is judged, so callers
	// can turn API errors into RetryableError.
	Classify func(error) error
}

// DefaultRetryOptions suits the Sheets API, whose write quota refills every
// minute: a rate-limited push waits up to a minute before trying again.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     time.Minute,
		Multiplier:   2,
		Operation:    "operation",
	}
}

func (o RetryOptions) withDefaults() RetryOptions {
	def := DefaultRetryOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = def.InitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = def.MaxDelay
	}
	if o.Multiplier < 1 {
		o.Multiplier = def.Multiplier
	}
	if o.Operation == "" {
		o.Operation = def.Operation
	}
	return o
}

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
	// RetryAfter is the wait the server asked for; zero when it gave none.
	RetryAfter time.Duration
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// ClassifyStatus sorts a failed HTTP call by its status code. 429 is a rate
// limit, 408 and 5xx are transient, and any other 4xx fails at once.
func ClassifyStatus(code int, retryAfter time.Duration, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &RetryableError{Err: fmt.Errorf("%w: %w", ErrRateLimit, err), Retryable: true, RetryAfter: retryAfter}
	case code == http.StatusRequestTimeout || code >= http.StatusInternalServerError:
		return &RetryableError{Err: err, Retryable: true, RetryAfter: retryAfter}
	case code >= http.StatusBadRequest:
		return &RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}

// ParseRetryAfter reads a Retry-After header given in seconds. HTTP dates
// and malformed values read as zero.
func ParseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// WithRetry runs operation until it succeeds, fails with a non-retryable
// error, runs out of attempts or ctx ends. The wait between attempts grows
// by Multiplier up to MaxDelay; a server-supplied RetryAfter replaces it and
// a rate limit without one waits MaxDelay.
func WithRetry(ctx context.Context, operation func() error, opts RetryOptions) error {
	opts = opts.withDefaults()
	delay := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if opts.Classify != nil {
			err = opts.Classify(err)
		}

		var retryableErr *RetryableError
		if errors.As(err, &retryableErr) && !retryableErr.Retryable {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w: %s failed %d times: %w", ErrMaxRetries, opts.Operation, attempt, err)
		}

		wait := nextWait(err, delay, opts.MaxDelay)
		slog.Warn("Retrying after failure",
			"operation", opts.Operation,
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"wait", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay = min(time.Duration(float64(delay)*opts.Multiplier), opts.MaxDelay)
	}
}

func nextWait(err error, delay, maxDelay time.Duration) time.Duration {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) && retryableErr.RetryAfter > 0 {
		return min(retryableErr.RetryAfter, maxDelay)
	}
	if errors.Is(err, ErrRateLimit) {
		return maxDelay
	}
	return delay
}
