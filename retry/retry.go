/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package retry provides exponential backoff with jitter for model API
// calls. Quota errors on free-tier Gemini keys are routine, so the defaults
// lean toward long waits rather than fast failure.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls retry behavior for transient API errors.
type Config struct {
	// MaxRetries is the number of retry attempts after the first call.
	// 0 disables retries entirely.
	MaxRetries int
	// BaseBackoff is the wait before the first retry; it doubles per
	// attempt.
	BaseBackoff time.Duration
	// MaxBackoff caps the exponential growth.
	MaxBackoff time.Duration
	// MaxJitter is the upper bound on the random delay added to each
	// backoff to spread out concurrent retries.
	MaxJitter time.Duration
}

// Default returns the retry configuration used by the extraction pipeline:
// waits sized for quota-based rate limits, which recover on the order of
// tens of seconds rather than milliseconds.
func Default() Config {
	return Config{
		MaxRetries:  3,
		BaseBackoff: 2 * time.Second,
		MaxBackoff:  120 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Validate checks the configuration for negative values.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// Do runs fn, retrying with exponential backoff while isRetryable classifies
// the failure as transient. The operation name appears in logs and the final
// error. Waits are interruptible via ctx.
func Do[T any](ctx context.Context, cfg Config, operation string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if !isRetryable(lastErr) {
			return result, lastErr
		}
		if attempt >= cfg.MaxRetries {
			break
		}

		backoff := min(cfg.BaseBackoff<<attempt, cfg.MaxBackoff)
		backoff += jitter(cfg.MaxJitter)

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", cfg.MaxRetries).
			With("backoff", backoff).
			With("error", lastErr.Error()).
			Warn("Transient model API error, retrying")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return result, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, lastErr)
}

// jitter returns a uniformly random duration in [0, max).
func jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64())
}
