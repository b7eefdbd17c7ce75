package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func quickConfig(maxRetries int) Config {
	return Config{
		MaxRetries: maxRetries,
		BaseDelay:  5 * time.Millisecond,
		MaxDelay:   50 * time.Millisecond,
		Multiplier: 2.0,
	}
}

func TestDo_FirstAttemptSuccess(t *testing.T) {
	result := Do(context.Background(), quickConfig(2), zerolog.Nop(), func() error {
		return nil
	})

	if !result.Success {
		t.Error("expected success")
	}
	if result.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", result.Attempts)
	}
}

func TestDo_EventualSuccess(t *testing.T) {
	attempts := 0
	result := Do(context.Background(), quickConfig(3), zerolog.Nop(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary failure")
		}
		return nil
	})

	if !result.Success {
		t.Error("expected eventual success")
	}
	if result.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", result.Attempts)
	}
}

func TestDo_AllAttemptsFail(t *testing.T) {
	wantErr := errors.New("persistent failure")
	result := Do(context.Background(), quickConfig(2), zerolog.Nop(), func() error {
		return wantErr
	})

	if result.Success {
		t.Error("expected failure")
	}
	if result.Attempts != 3 { // MaxRetries + 1
		t.Errorf("expected 3 attempts, got %d", result.Attempts)
	}
	if !errors.Is(result.LastError, wantErr) {
		t.Errorf("expected last error %v, got %v", wantErr, result.LastError)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	cfg := Config{
		MaxRetries: 5,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Second,
		Multiplier: 2.0,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	result := Do(ctx, cfg, zerolog.Nop(), func() error {
		return errors.New("always fails")
	})

	if result.Success {
		t.Error("expected failure after cancellation")
	}
	if !errors.Is(result.LastError, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", result.LastError)
	}
	if result.Attempts > 2 {
		t.Errorf("expected the timeout to cut retries short, got %d attempts", result.Attempts)
	}
}

func TestBackoffDelay_GrowthAndCap(t *testing.T) {
	cfg := Config{BaseDelay: time.Second, MaxDelay: 10 * time.Second, Multiplier: 2.0}

	if d := backoffDelay(cfg, 0); d != time.Second {
		t.Errorf("expected 1s, got %v", d)
	}
	if d := backoffDelay(cfg, 2); d != 4*time.Second {
		t.Errorf("expected 4s, got %v", d)
	}
	if d := backoffDelay(cfg, 10); d != 10*time.Second {
		t.Errorf("expected cap at 10s, got %v", d)
	}
}

func TestIsRetryable(t *testing.T) {
	for _, err := range []error{
		errors.New("connection refused"),
		errors.New("HTTP 429 Too Many Requests"),
		errors.New("503 Service Unavailable"),
		errors.New("context deadline exceeded"),
	} {
		if !IsRetryable(err) {
			t.Errorf("expected %v to be retryable", err)
		}
	}

	for _, err := range []error{
		nil,
		errors.New("invalid api key"),
		errors.New("HTTP 400 Bad Request"),
	} {
		if IsRetryable(err) {
			t.Errorf("expected %v to not be retryable", err)
		}
	}
}
