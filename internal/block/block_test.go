package block_test

import (
	"testing"
	"time"

	"github.com/ayoisaiah/blox/internal/block"
)

func date(hour, minute, sec int) time.Time {
	return time.Date(2024, time.March, 5, hour, minute, sec, 0, time.UTC)
}

func TestIndexForInstant(t *testing.T) {
	cases := []struct {
		now  time.Time
		want int
	}{
		{date(0, 0, 0), 0},
		{date(0, 19, 59), 0},
		{date(0, 20, 0), 1},
		{date(12, 0, 0), 36},
		{date(12, 39, 59), 37},
		{date(23, 40, 0), 71},
		{date(23, 59, 59), 71},
	}

	for _, tc := range cases {
		got := block.IndexForInstant(tc.now)
		if got != tc.want {
			t.Errorf(
				"IndexForInstant(%v) = %d, want %d",
				tc.now,
				got,
				tc.want,
			)
		}
	}
}

func TestSlotBounds(t *testing.T) {
	start, end := block.SlotBounds(date(15, 43, 12), 36)

	if !start.Equal(date(12, 0, 0)) {
		t.Errorf("start = %v, want %v", start, date(12, 0, 0))
	}

	if !end.Equal(date(12, 20, 0)) {
		t.Errorf("end = %v, want %v", end, date(12, 20, 0))
	}

	if got := end.Sub(start); got != block.SlotSeconds*time.Second {
		t.Errorf("slot length = %v, want %v", got, block.SlotSeconds*time.Second)
	}
}

func TestRemainingSeconds(t *testing.T) {
	cases := []struct {
		now   time.Time
		index int
		want  uint
	}{
		{date(12, 0, 0), 36, 1200},
		{date(12, 10, 0), 36, 600},
		{date(12, 19, 59), 36, 1},
		{date(12, 20, 0), 36, 0},
		// slot already elapsed
		{date(12, 30, 0), 36, 0},
	}

	for _, tc := range cases {
		got := block.RemainingSeconds(tc.index, tc.now)
		if got != tc.want {
			t.Errorf(
				"RemainingSeconds(%d, %v) = %d, want %d",
				tc.index,
				tc.now,
				got,
				tc.want,
			)
		}
	}
}

func TestDisplayNumber(t *testing.T) {
	cases := []struct {
		index        int
		dayStartHour int
		want         uint
	}{
		{0, 0, 1},
		{71, 0, 72},
		// day starts at 06:00: slot 18 (06:00-06:20) is displayed first
		{18, 6, 1},
		{17, 6, 72},
		{0, 6, 55},
	}

	for _, tc := range cases {
		got := block.DisplayNumber(tc.index, tc.dayStartHour)
		if got != tc.want {
			t.Errorf(
				"DisplayNumber(%d, %d) = %d, want %d",
				tc.index,
				tc.dayStartHour,
				got,
				tc.want,
			)
		}
	}
}
