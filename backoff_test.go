package reactor

import (
	"testing"
	"time"
)

func TestBackoffSequence(t *testing.T) {
	var b Backoff
	want := []time.Duration{
		0, 100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond,
		800 * time.Millisecond, 1600 * time.Millisecond, 3200 * time.Millisecond,
		6400 * time.Millisecond, 10 * time.Second, 10 * time.Second,
	}
	for i, w := range want {
		if got := b.Next(); got != w {
			t.Fatalf("Next() #%d = %v, want %v", i, got, w)
		}
	}
}

func TestBackoffReset(t *testing.T) {
	var b Backoff
	b.Next()
	b.Next()
	b.Reset()
	if got := b.Next(); got != 0 {
		t.Fatalf("after Reset, Next() = %v, want 0", got)
	}
}

func TestBackoffMaxClampsTheSchedule(t *testing.T) {
	b := Backoff{Max: 500 * time.Millisecond}
	want := []time.Duration{
		0, 100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond,
		500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond,
	}
	for i, w := range want {
		if got := b.Next(); got != w {
			t.Fatalf("Next() #%d = %v, want %v", i, got, w)
		}
	}
}
