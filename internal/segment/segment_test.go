package segment_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ayoisaiah/blox/internal/segment"
)

func TestSplitAt(t *testing.T) {
	l := segment.NewLedger(segment.Work, "deep-work", "refactor", 0)

	seg, ok := l.SplitAt(600, segment.Break, "", "")
	if !ok {
		t.Fatal("expected a finalized segment")
	}

	want := segment.Segment{
		Kind:        segment.Work,
		Category:    "deep-work",
		Label:       "refactor",
		Seconds:     600,
		StartOffset: 0,
	}

	if diff := cmp.Diff(want, seg); diff != "" {
		t.Errorf("segment mismatch (-want +got):\n%s", diff)
	}

	if got := l.OpenStart(); got != 600 {
		t.Errorf("open segment start = %d, want 600", got)
	}

	if got := l.OpenKind(); got != segment.Break {
		t.Errorf("open segment kind = %s, want %s", got, segment.Break)
	}
}

func TestSplitAtZeroDuration(t *testing.T) {
	l := segment.NewLedger(segment.Work, "", "", 100)

	_, ok := l.SplitAt(100, segment.Break, "", "")
	if ok {
		t.Error("zero-length segment should be discarded, not finalized")
	}

	if got := len(l.Segments()); got != 0 {
		t.Errorf("ledger has %d segments, want 0", got)
	}
}

func TestShouldSplit(t *testing.T) {
	cases := []struct {
		name     string
		category string
		label    string
		elapsed  uint
		want     bool
	}{
		{
			name:     "category change always splits",
			category: "meetings",
			label:    "standup",
			elapsed:  3,
			want:     true,
		},
		{
			name:     "label change below minimum duration",
			category: "deep-work",
			label:    "edited",
			elapsed:  9,
			want:     false,
		},
		{
			name:     "label change at minimum duration",
			category: "deep-work",
			label:    "edited",
			elapsed:  10,
			want:     true,
		},
		{
			name:     "no change",
			category: "deep-work",
			label:    "refactor",
			elapsed:  500,
			want:     false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := segment.NewLedger(segment.Work, "deep-work", "refactor", 0)

			got := l.ShouldSplit(tc.elapsed, tc.category, tc.label)
			if got != tc.want {
				t.Errorf("ShouldSplit = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestLiveView(t *testing.T) {
	l := segment.NewLedger(segment.Work, "deep-work", "", 0)

	_, _ = l.SplitAt(300, segment.Break, "", "")

	view := l.LiveView(450)

	want := []segment.Segment{
		{
			Kind:        segment.Work,
			Category:    "deep-work",
			Seconds:     300,
			StartOffset: 0,
		},
		{
			Kind:        segment.Break,
			Seconds:     150,
			StartOffset: 300,
		},
	}

	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("live view mismatch (-want +got):\n%s", diff)
	}

	// the view must not commit a boundary
	if got := len(l.Segments()); got != 1 {
		t.Errorf("ledger has %d finalized segments, want 1", got)
	}
}

func TestSecondsMatchesElapsed(t *testing.T) {
	l := segment.NewLedger(segment.Work, "", "", 0)

	_, _ = l.SplitAt(120, segment.Break, "", "")
	_, _ = l.SplitAt(180, segment.Work, "", "")

	for _, elapsed := range []uint{180, 200, 1200} {
		if got := l.Seconds(elapsed); got != elapsed {
			t.Errorf("Seconds(%d) = %d, want %d", elapsed, got, elapsed)
		}
	}
}
