package engine

import (
	"time"

	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/segment"
	"github.com/ayoisaiah/blox/internal/timeutil"
)

// State identifies the engine's position in its lifecycle.
type State string

const (
	StateIdle         State = "idle"
	StateRunning      State = "running"
	StatePaused       State = "paused"
	StatePausedExpiry State = "paused_expiry"
	StateCompleted    State = "completed"
)

// session is the single mutable root owned by the engine. At most one
// exists at a time; consumers only ever see immutable projections of
// it through emitted events.
type session struct {
	startedAt time.Time
	endAt     time.Time
	resumedAt time.Time
	date      time.Time

	runID string
	mode  segment.Kind

	// category/label context is kept per mode so that switching back
	// restores it exactly
	workCategory  string
	workLabel     string
	breakCategory string
	breakLabel    string

	previousSegments []segment.Segment
	ledger           *segment.Ledger
	tracker          fillTracker

	blockIndex        int
	initialDuration   uint
	resumeBase        uint
	pausedSecondsUsed uint
}

// secondsUsed returns the active seconds accrued by the session at the
// given instant. Paused wall-clock time is never counted.
func (s *session) secondsUsed(now time.Time, state State) uint {
	if state != StateRunning {
		return s.pausedSecondsUsed
	}

	elapsed := now.Sub(s.resumedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	used := s.resumeBase + uint(elapsed)
	if used > s.initialDuration {
		used = s.initialDuration
	}

	return used
}

// timeLeft returns the whole seconds remaining until the slot
// boundary, never negative.
func (s *session) timeLeft(now time.Time) uint {
	left := s.endAt.Sub(now).Seconds()
	if left < 0 {
		return 0
	}

	return uint(left)
}

// fill returns the visual proportion at the given active-seconds
// offset.
func (s *session) fill(elapsed uint) float64 {
	return s.tracker.fill(s.ledger.Seconds(elapsed))
}

// snapshot projects the session into its persistable form. The segment
// list covers the whole session, including the synthesized in-progress
// tail.
func (s *session) snapshot(elapsed uint) models.RunSnapshot {
	segs := make(
		[]segment.Segment,
		0,
		len(s.previousSegments)+len(s.ledger.Segments())+1,
	)
	segs = append(segs, s.previousSegments...)
	segs = append(segs, s.ledger.LiveView(elapsed)...)

	return models.RunSnapshot{
		RunID:               s.runID,
		StartedAt:           s.startedAt,
		InitialDurationSecs: s.initialDuration,
		Segments:            segs,
		CurrentSegmentStart: s.ledger.OpenStart(),
		CurrentMode:         s.ledger.OpenKind(),
		CurrentCategory:     s.ledger.OpenCategory(),
		CurrentLabel:        s.ledger.OpenLabel(),
		LastWorkCategory:    s.workCategory,
		VisualFill:          s.fill(elapsed),
	}
}

// block projects the session into its persisted block record.
func (s *session) block(
	segs []segment.Segment,
	used uint,
	fill float64,
	status models.BlockStatus,
) models.Block {
	return models.Block{
		Date:        timeutil.DayKey(s.date),
		Index:       s.blockIndex,
		Category:    s.workCategory,
		Label:       s.workLabel,
		Status:      status,
		Segments:    segs,
		UsedSeconds: used,
		Progress:    fill,
	}
}
