package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapPreservesOrder(t *testing.T) {
	results := Map(context.Background(), 2, 5, func(_ context.Context, i int) (string, error) {
		// Later branches finish first to expose ordering bugs.
		time.Sleep(time.Duration(5-i) * time.Millisecond)
		return fmt.Sprintf("value-%d", i), nil
	})

	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for i, result := range results {
		expected := fmt.Sprintf("value-%d", i)
		if result.Value != expected {
			t.Fatalf("expected %q at index %d, got %q", expected, i, result.Value)
		}
	}
}

func TestMapHonoursLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	var mu sync.Mutex

	Map(context.Background(), 3, 12, func(_ context.Context, i int) (int, error) {
		current := inFlight.Add(1)
		mu.Lock()
		if current > peak.Load() {
			peak.Store(current)
		}
		mu.Unlock()
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return i, nil
	})

	if got := peak.Load(); got > 3 {
		t.Fatalf("expected at most 3 in flight, observed %d", got)
	}
}

func TestMapBranchErrorsStayIsolated(t *testing.T) {
	failure := errors.New("branch failed")
	results := Map(context.Background(), 2, 3, func(_ context.Context, i int) (int, error) {
		if i == 1 {
			return 0, failure
		}
		return i * 10, nil
	})

	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("expected healthy branches to succeed, got %v and %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, failure) {
		t.Fatalf("expected branch error, got %v", results[1].Err)
	}
	if results[2].Value != 20 {
		t.Fatalf("expected 20, got %d", results[2].Value)
	}
}

func TestMapZeroInputs(t *testing.T) {
	results := Map(context.Background(), 0, 0, func(_ context.Context, i int) (int, error) {
		t.Fatal("fn must not be called")
		return 0, nil
	})
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
