package engine

import "github.com/ayoisaiah/blox/internal/block"

// fillTracker converts live elapsed seconds into the 0..1 visual fill
// proportion. The scale factor is derived from the visual space left
// over from earlier sessions divided by the real seconds left in the
// slot, so the fill reaches exactly 1.0 at the slot boundary no matter
// when the session started or resumed.
type fillTracker struct {
	previous float64
	scale    float64
}

// newFillTracker seeds a tracker at session start or resume. The
// remaining real time must be taken before the displayed duration is
// rounded up, so sub-second precision is preserved.
func newFillTracker(previous, remainingRealSeconds float64) fillTracker {
	if previous < 0 {
		previous = 0
	}

	if previous > 1 {
		previous = 1
	}

	t := fillTracker{previous: previous}

	if remainingRealSeconds > 0 {
		t.scale = (1 - previous) / remainingRealSeconds
	}

	return t
}

// fill returns the visual proportion after the given number of live
// seconds, clamped to [0,1].
func (t fillTracker) fill(liveSeconds uint) float64 {
	f := t.previous + float64(liveSeconds)*t.scale

	if f > 1 {
		return 1
	}

	if f < 0 {
		return 0
	}

	return f
}

// baselineFill computes the visual proportion implied by previously
// recorded segments at the fixed one-slot-per-1200-seconds rate. Used
// when a session starts without an explicit carried-over fill value.
func baselineFill(seconds uint) float64 {
	f := float64(seconds) / block.SlotSeconds

	if f > 1 {
		return 1
	}

	return f
}
