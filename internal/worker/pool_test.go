package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapPreservesInputOrder(t *testing.T) {
	inputs := []int{5, 1, 4, 2, 3}
	got, err := Map(context.Background(), 3, inputs, func(_ context.Context, n int) (string, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return fmt.Sprintf("n%d", n), nil
	})
	if err != nil {
		t.Fatalf("Map returned unexpected error: %v", err)
	}

	want := []string{"n5", "n1", "n4", "n2", "n3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected results: got=%v want=%v", got, want)
		}
	}
}

func TestMapBoundsConcurrency(t *testing.T) {
	var running, peak int32
	inputs := make([]int, 12)
	_, err := Map(context.Background(), 2, inputs, func(context.Context, int) (struct{}, error) {
		now := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("Map returned unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&peak); got > 2 {
		t.Fatalf("expected at most 2 concurrent tasks, saw %d", got)
	}
}

func TestMapCollectsErrors(t *testing.T) {
	errA := errors.New("task a failed")
	errB := errors.New("task b failed")

	got, err := Map(context.Background(), 2, []string{"a", "ok", "b"}, func(_ context.Context, s string) (string, error) {
		switch s {
		case "a":
			return "", errA
		case "b":
			return "", errB
		}
		return s, nil
	})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	text := err.Error()
	if !strings.Contains(text, errA.Error()) || !strings.Contains(text, errB.Error()) {
		t.Fatalf("joined error should include both errors, got: %v", err)
	}
	if got[1] != "ok" || got[0] != "" || got[2] != "" {
		t.Fatalf("unexpected partial results: %v", got)
	}
}

func TestMapReturnsContextErrorWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, 1, []int{1}, func(context.Context, int) (int, error) { return 0, nil })
	if err == nil {
		t.Fatalf("expected context cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMapEmptyInputs(t *testing.T) {
	got, err := Map(context.Background(), 4, []int(nil), func(context.Context, int) (int, error) { return 1, nil })
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v %v", got, err)
	}
}
