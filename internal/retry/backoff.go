package retry

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls exponential-backoff retries.
type Config struct {
	MaxRetries int           `json:"max_retries"`
	BaseDelay  time.Duration `json:"base_delay"`
	MaxDelay   time.Duration `json:"max_delay"`
	Multiplier float64       `json:"multiplier"`
	Jitter     bool          `json:"jitter"`
}

// Result describes how a retried operation went.
type Result struct {
	Attempts      int
	TotalDuration time.Duration
	LastError     error
	Success       bool
}

// Default returns a retry configuration with sensible defaults.
func Default() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// LLM returns a retry configuration tuned for model calls, which are slow
// and rate-limited more often than ordinary HTTP.
func LLM() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   60 * time.Second,
		Multiplier: 2.5,
		Jitter:     true,
	}
}

// Do runs op with exponential backoff until it succeeds, retries are
// exhausted, or ctx is cancelled.
func Do(ctx context.Context, cfg Config, log zerolog.Logger, op func() error) Result {
	start := time.Now()
	result := Result{}

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result.Attempts = attempt + 1

		err := op()
		if err == nil {
			result.Success = true
			result.TotalDuration = time.Since(start)
			if attempt > 0 {
				log.Info().Int("retries", attempt).Dur("took", result.TotalDuration).
					Msg("operation succeeded after retrying")
			}
			return result
		}
		result.LastError = err

		if attempt >= cfg.MaxRetries {
			break
		}
		if ctx.Err() != nil {
			result.LastError = ctx.Err()
			break
		}

		delay := backoffDelay(cfg, attempt)
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("delay", delay).
			Msg("operation failed, backing off")

		select {
		case <-ctx.Done():
			result.LastError = ctx.Err()
			result.TotalDuration = time.Since(start)
			return result
		case <-time.After(delay):
		}
	}

	result.TotalDuration = time.Since(start)
	log.Error().Err(result.LastError).Int("attempts", result.Attempts).
		Msg("operation failed permanently")
	return result
}

// backoffDelay is baseDelay * multiplier^attempt, capped at MaxDelay, with
// up to 10% random jitter.
func backoffDelay(cfg Config, attempt int) time.Duration {
	delay := float64(cfg.BaseDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	if cfg.Jitter {
		delay += (rand.Float64() - 0.5) * 2 * delay * 0.1
		if delay < 0 {
			delay = float64(cfg.BaseDelay)
		}
	}
	return time.Duration(delay)
}

// IsRetryable reports whether an error is worth retrying at all. Transport
// hiccups and rate limits are; everything else is assumed permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"429",
		"502",
		"503",
		"504",
		"no such host",
		"broken pipe",
		"context deadline exceeded",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
