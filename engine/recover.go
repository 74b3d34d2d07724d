package engine

import (
	"log/slog"
	"time"

	"github.com/ayoisaiah/blox/internal/block"
	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/segment"
	"github.com/ayoisaiah/blox/internal/timeutil"
)

// LifecycleSignal is implemented by thin host adapters that surface
// suspend/resume transitions to the engine. The engine itself has no
// platform dependency; suspension is detected after the fact by
// comparing absolute timestamps.
type LifecycleSignal interface {
	OnSuspend()
	OnResume()
}

// Recovery reconciles engine state after an arbitrary real-time gap.
// All deadlines are stored as absolute instants, never as relative
// countdown counters, which is what makes recovery correct regardless
// of how long the host was suspended.
type Recovery struct {
	eng *Engine
}

// NewRecovery returns the engine's recovery coordinator.
func NewRecovery(eng *Engine) *Recovery {
	return &Recovery{eng: eng}
}

// OnSuspend persists a snapshot immediately so that state survives
// full process termination, not just suspension.
func (r *Recovery) OnSuspend() {
	r.eng.mu.Lock()
	defer r.eng.mu.Unlock()

	if r.eng.sess == nil {
		return
	}

	r.eng.snapshotNow(r.eng.clock.Now())
}

// OnResume reconciles the session against the wall clock after the
// host returns from the background.
func (r *Recovery) OnResume() {
	r.eng.reconcile()
}

// Restore rebuilds a session from a persisted snapshot after full
// process loss and resumes it, or completes it with full credit if the
// slot boundary passed while unobserved.
func (r *Recovery) Restore(snap models.RunSnapshot) error {
	return r.eng.restore(snap)
}

// reconcile recomputes the session's position from absolute
// timestamps. A boundary that passed while the process was suspended
// mirrors natural completion's full-credit rule.
func (e *Engine) reconcile() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	switch e.state {
	case StateRunning:
		s := e.sess

		if !s.endAt.After(now) {
			e.complete(now)
			return
		}

		// a break reminder that elapsed while backgrounded fires
		// immediately on resume
		if !e.breakNotified && !e.breakNotifyAt.IsZero() &&
			!now.Before(e.breakNotifyAt) {
			e.breakNotified = true
			e.events.emitBreakNotify()
		}

		e.snapshotNow(now)
	case StatePaused:
		if !e.sess.endAt.After(now) {
			e.stopPauseExpiry()
			e.state = StatePausedExpiry
			e.events.emitPausedExpiry()
		}
	default:
	}
}

func (e *Engine) restore(snap models.RunSnapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return e.reject("restore", ErrSessionActive)
	}

	now := e.clock.Now()

	endAt := snap.StartedAt.Add(
		time.Duration(snap.InitialDurationSecs) * time.Second,
	)

	used := segment.Total(snap.Segments)

	prevFill := snap.VisualFill
	if prevFill <= 0 {
		prevFill = baselineFill(used)
	}

	mode := snap.CurrentMode
	if mode == "" {
		mode = segment.Work
	}

	sess := &session{
		startedAt:        snap.StartedAt,
		endAt:            endAt,
		resumedAt:        now,
		date:             timeutil.RoundToStart(snap.StartedAt),
		runID:            snap.RunID,
		mode:             mode,
		workCategory:     snap.LastWorkCategory,
		previousSegments: snap.Segments,
		ledger: segment.NewLedger(
			mode,
			snap.CurrentCategory,
			snap.CurrentLabel,
			used,
		),
		tracker:         newFillTracker(prevFill, endAt.Sub(now).Seconds()),
		blockIndex:      block.IndexForInstant(snap.StartedAt),
		initialDuration: snap.InitialDurationSecs,
		resumeBase:      used,
	}

	if mode == segment.Work {
		sess.workCategory = snap.CurrentCategory
		sess.workLabel = snap.CurrentLabel
	}

	e.sess = sess

	if !endAt.After(now) {
		// the boundary passed while unobserved: full credit, exactly
		// as if the completion had been seen live
		e.state = StateRunning
		e.complete(now)

		return nil
	}

	e.state = StateRunning
	e.tickCount = 0
	e.breakNotified = snap.CurrentMode == segment.Break

	if e.opts.BreakNotifyAfter > 0 {
		e.breakNotifyAt = snap.StartedAt.Add(e.opts.BreakNotifyAfter)

		if !e.breakNotified && !now.Before(e.breakNotifyAt) {
			e.breakNotified = true
			e.events.emitBreakNotify()
		}
	}

	slog.Info("restored interrupted session",
		slog.String("run_id", snap.RunID),
		slog.Int("block_index", sess.blockIndex),
		slog.Uint64("seconds_recorded", uint64(used)),
	)

	e.snapshotNow(now)

	return nil
}
