package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		BreakerEnabled:      false,
	}
}

func TestExecuteRetriesRetryableErrors(t *testing.T) {
	exec := NewExecutor(fastConfig())

	calls := 0
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, func(error) Classification { return Classification{Retryable: true, RecordFailure: true} })

	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestExecuteStopsOnNonRetryable(t *testing.T) {
	exec := NewExecutor(fastConfig())

	calls := 0
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("fatal")
	}, func(error) Classification { return Classification{Retryable: false, RecordFailure: true} })

	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected single attempt, got %d", calls)
	}
}

func TestExecuteOnceNeverRetries(t *testing.T) {
	exec := NewExecutor(fastConfig())

	calls := 0
	err := exec.ExecuteOnce(context.Background(), "ocr.recognize", func(context.Context) error {
		calls++
		return errors.New("backend down")
	}, func(error) Classification { return Classification{Retryable: true, RecordFailure: true} })

	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("ExecuteOnce must not retry, got %d attempts", calls)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	cfg := fastConfig()
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerOpenTimeout = time.Minute
	exec := NewExecutor(cfg)

	classify := func(error) Classification { return Classification{Retryable: false, RecordFailure: true} }
	for i := 0; i < 3; i++ {
		_ = exec.ExecuteOnce(context.Background(), "llm.extract", func(context.Context) error {
			return errors.New("boom")
		}, classify)
	}

	err := exec.ExecuteOnce(context.Background(), "llm.extract", func(context.Context) error {
		t.Fatalf("callback must not run while circuit is open")
		return nil
	}, classify)
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	exec := NewExecutor(fastConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := exec.Execute(ctx, "op", func(context.Context) error {
		t.Fatalf("callback must not run on cancelled context")
		return nil
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
