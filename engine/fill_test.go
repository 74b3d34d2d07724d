package engine

import (
	"math"
	"testing"
)

func TestFillTrackerScale(t *testing.T) {
	cases := []struct {
		name      string
		previous  float64
		remaining float64
		live      uint
		want      float64
	}{
		{
			name:      "fresh slot",
			previous:  0,
			remaining: 1200,
			live:      600,
			want:      0.5,
		},
		{
			name:      "half filled with half the time left",
			previous:  0.5,
			remaining: 600,
			live:      600,
			want:      1.0,
		},
		{
			name:      "late start still reaches full",
			previous:  0,
			remaining: 900,
			live:      900,
			want:      1.0,
		},
		{
			name:      "clamped above one",
			previous:  0.5,
			remaining: 600,
			live:      900,
			want:      1.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := newFillTracker(tc.previous, tc.remaining)

			got := tr.fill(tc.live)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("fill(%d) = %v, want %v", tc.live, got, tc.want)
			}
		})
	}
}

func TestFillTrackerMonotonic(t *testing.T) {
	tr := newFillTracker(0.25, 731.4)

	prev := tr.fill(0)

	for s := uint(1); s <= 800; s++ {
		got := tr.fill(s)
		if got < prev {
			t.Fatalf("fill decreased at %d seconds: %v -> %v", s, prev, got)
		}

		prev = got
	}
}

func TestFillTrackerZeroRemaining(t *testing.T) {
	tr := newFillTracker(0.8, 0)

	if got := tr.fill(100); got != 0.8 {
		t.Errorf("fill with no remaining time = %v, want 0.8", got)
	}
}

func TestBaselineFill(t *testing.T) {
	cases := []struct {
		seconds uint
		want    float64
	}{
		{0, 0},
		{600, 0.5},
		{1200, 1},
		{2400, 1},
	}

	for _, tc := range cases {
		if got := baselineFill(tc.seconds); got != tc.want {
			t.Errorf("baselineFill(%d) = %v, want %v", tc.seconds, got, tc.want)
		}
	}
}
