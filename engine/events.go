package engine

import (
	"time"

	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/segment"
)

// Completion summarizes a finished session. Natural completions carry
// full credit for the slot; manual stops carry the actual partial
// figures.
type Completion struct {
	Date            time.Time
	Segments        []segment.Segment
	BlockIndex      int
	SecondsUsed     uint
	InitialDuration uint
	VisualFill      float64
	IsBreak         bool
}

// Events is the engine's observer surface. Consumers receive immutable
// values, never a handle into engine state. Nil callbacks are skipped.
type Events struct {
	// Tick fires every second with the remaining seconds and the
	// visual progress percentage.
	Tick func(timeLeft uint, progressPercent float64)

	// SegmentBoundary fires whenever a segment is finalized.
	SegmentBoundary func(seg segment.Segment)

	// BreakNotify fires once per session when the mid-slot break
	// reminder deadline passes. The timer keeps running.
	BreakNotify func()

	// Snapshot fires on the snapshot cadence and immediately after
	// mode switches.
	Snapshot func(snap models.RunSnapshot)

	// Complete fires when a session ends, naturally or manually.
	Complete func(c Completion)

	// CheckInRequired fires when automatic continuation is suppressed
	// until the user acknowledges a check-in.
	CheckInRequired func()

	// PausedExpiry fires when the slot boundary passes while the
	// session is paused, so the caller can ask the user whether they
	// meant to keep working.
	PausedExpiry func()
}

func (e Events) emitTick(timeLeft uint, progress float64) {
	if e.Tick != nil {
		e.Tick(timeLeft, progress)
	}
}

func (e Events) emitSegmentBoundary(seg segment.Segment) {
	if e.SegmentBoundary != nil {
		e.SegmentBoundary(seg)
	}
}

func (e Events) emitBreakNotify() {
	if e.BreakNotify != nil {
		e.BreakNotify()
	}
}

func (e Events) emitSnapshot(snap models.RunSnapshot) {
	if e.Snapshot != nil {
		e.Snapshot(snap)
	}
}

func (e Events) emitComplete(c Completion) {
	if e.Complete != nil {
		e.Complete(c)
	}
}

func (e Events) emitCheckInRequired() {
	if e.CheckInRequired != nil {
		e.CheckInRequired()
	}
}

func (e Events) emitPausedExpiry() {
	if e.PausedExpiry != nil {
		e.PausedExpiry()
	}
}
