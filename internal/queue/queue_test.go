package queue

import (
	"testing"
	"time"
)

func TestBackoff_ExponentialFromBase(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{0, time.Second},  // below 1 is clamped
		{-5, time.Second}, // below 1 is clamped
	}
	for _, tt := range tests {
		if got := Backoff(time.Second, tt.attempt); got != tt.want {
			t.Errorf("Backoff(1s, %d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBackoff_ScalesWithBase(t *testing.T) {
	if got := Backoff(500*time.Millisecond, 3); got != 2*time.Second {
		t.Errorf("Backoff(500ms, 3) = %v, want 2s", got)
	}
}
