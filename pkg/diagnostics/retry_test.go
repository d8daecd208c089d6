package diagnostics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrierSucceedsAfterFailures(t *testing.T) {
	calls := 0
	r := NewRetrier(3, time.Millisecond)

	err := r.Do(context.Background(), "probe", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetrierReturnsLastError(t *testing.T) {
	lastErr := errors.New("still broken")
	r := NewRetrier(2, time.Millisecond)

	err := r.Do(context.Background(), "probe", func(context.Context) error {
		return lastErr
	})

	if !errors.Is(err, lastErr) {
		t.Errorf("expected last error, got %v", err)
	}
}

func TestRetrierHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRetrier(10, time.Minute)

	calls := 0
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Do(ctx, "probe", func(context.Context) error {
			calls++
			return errors.New("transient")
		})
	}()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetrierMinimumOneAttempt(t *testing.T) {
	calls := 0
	r := NewRetrier(0, 0)

	_ = r.Do(context.Background(), "probe", func(context.Context) error {
		calls++
		return errors.New("always")
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
