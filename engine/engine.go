// Package engine operates the block countdown timer, splits elapsed
// time into typed segments, and recovers correct state after the host
// process was suspended for an unknown duration.
package engine

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/blox/internal/block"
	"github.com/ayoisaiah/blox/internal/clock"
	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/segment"
	"github.com/ayoisaiah/blox/internal/timeutil"
)

// snapshotEveryTicks is the snapshot cadence expressed in 1-second
// ticks.
const snapshotEveryTicks = 5

// BlockRepository persists block records. Persistence failures are
// non-fatal: in-memory session state remains authoritative.
type BlockRepository interface {
	SaveBlock(b models.Block) error
	LoadBlocks(date string) ([]models.Block, error)
}

// NotificationScheduler schedules and cancels slot-boundary
// notifications on the host platform.
type NotificationScheduler interface {
	ScheduleCompletion(at time.Time, blockIndex int, isBreak bool) error
	Cancel(blockIndex int) error
}

// SnapshotPublisher mirrors the active run for widgets and other
// external observers. Best-effort, no acknowledgement required.
type SnapshotPublisher interface {
	Publish(snap models.RunSnapshot) error
	Clear() error
}

// Options holds the engine's tunable settings.
type Options struct {
	// DayStartHour shifts display numbering so the configured hour is
	// slot 1.
	DayStartHour int

	// BreakNotifyAfter is how long into a work session the mid-slot
	// break reminder fires. Zero disables the reminder.
	BreakNotifyAfter time.Duration

	// CheckInThreshold is the number of consecutive automatic
	// continuations allowed before a check-in is required.
	CheckInThreshold uint
}

// StartOptions describes a session start request.
type StartOptions struct {
	Date             time.Time
	Category         string
	Label            string
	ExistingSegments []segment.Segment

	// ExistingFill carries the visual proportion already recorded on
	// the block. Pass a negative value to recompute it from
	// ExistingSegments at the fixed baseline rate.
	ExistingFill float64

	BlockIndex int
	Mode       segment.Kind
}

// Engine is the block timer state machine. All methods are safe for
// concurrent use, but event callbacks run synchronously and must not
// call back into the engine.
type Engine struct {
	clock     clock.Clock
	repo      BlockRepository
	notifier  NotificationScheduler
	publisher SnapshotPublisher
	events    Events
	checkIn   *CheckInCounter
	opts      Options

	mu            sync.Mutex
	state         State
	sess          *session
	pauseExpiry   clock.Timer
	tickCount     int
	breakNotifyAt time.Time
	breakNotified bool
}

// New creates an engine. Collaborators may be nil, in which case the
// corresponding side effects are skipped.
func New(
	clk clock.Clock,
	repo BlockRepository,
	notifier NotificationScheduler,
	publisher SnapshotPublisher,
	events Events,
	opts Options,
) *Engine {
	return &Engine{
		clock:     clk,
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		events:    events,
		checkIn:   NewCheckInCounter(opts.CheckInThreshold),
		opts:      opts,
		state:     StateIdle,
	}
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// TimeLeft returns the whole seconds remaining in the active session,
// or 0 when idle.
func (e *Engine) TimeLeft() uint {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return 0
	}

	return e.sess.timeLeft(e.clock.Now())
}

// VisualFill returns the current visual proportion of the active
// session, or 0 when idle.
func (e *Engine) VisualFill() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return 0
	}

	return e.sess.fill(e.sess.secondsUsed(e.clock.Now(), e.state))
}

// SecondsUsed returns the active seconds accrued by the current
// session.
func (e *Engine) SecondsUsed() uint {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return 0
	}

	return e.sess.secondsUsed(e.clock.Now(), e.state)
}

// BlockIndex returns the slot index of the active session, or -1 when
// idle.
func (e *Engine) BlockIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return -1
	}

	return e.sess.blockIndex
}

// Mode returns the active session's current mode.
func (e *Engine) Mode() segment.Kind {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return ""
	}

	return e.sess.mode
}

// CheckInCount returns the current automatic-continuation streak.
func (e *Engine) CheckInCount() uint {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.checkIn.Count()
}

// Start begins a new session on the slot containing the current time.
// Starting on any other slot, on a slot with no time left, or on a
// visually full block is rejected without changing state.
func (e *Engine) Start(opts StartOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.start(opts)
}

func (e *Engine) start(opts StartOptions) error {
	if e.state != StateIdle {
		return e.reject("start", ErrSessionActive)
	}

	now := e.clock.Now()

	if opts.BlockIndex != block.IndexForInstant(now) ||
		timeutil.DayKey(opts.Date) != timeutil.DayKey(now) {
		return e.reject("start", ErrWrongSlot)
	}

	_, endAt := block.SlotBounds(opts.Date, opts.BlockIndex)

	remaining := endAt.Sub(now).Seconds()
	if remaining <= 0 {
		return e.reject("start", ErrSlotElapsed)
	}

	mode := opts.Mode
	if mode == "" {
		mode = segment.Work
	}

	prevFill := opts.ExistingFill
	if prevFill < 0 {
		prevFill = baselineFill(segment.Total(opts.ExistingSegments))
	}

	if mode == segment.Work && prevFill >= 1 {
		return e.reject("start", ErrNoVisualRoom)
	}

	sess := &session{
		startedAt:        now,
		endAt:            endAt,
		resumedAt:        now,
		date:             timeutil.RoundToStart(opts.Date),
		runID:            now.Format(time.RFC3339Nano),
		mode:             mode,
		workCategory:     opts.Category,
		workLabel:        opts.Label,
		previousSegments: opts.ExistingSegments,
		ledger: segment.NewLedger(
			mode,
			opts.Category,
			opts.Label,
			0,
		),
		// the scale factor uses the sub-second remaining time; only
		// the displayed duration is rounded up
		tracker:         newFillTracker(prevFill, remaining),
		blockIndex:      opts.BlockIndex,
		initialDuration: uint(math.Ceil(remaining)),
	}

	e.sess = sess
	e.state = StateRunning
	e.tickCount = 0
	e.breakNotified = false
	e.breakNotifyAt = time.Time{}

	if e.opts.BreakNotifyAfter > 0 && mode == segment.Work {
		e.breakNotifyAt = now.Add(e.opts.BreakNotifyAfter)
	}

	if e.notifier != nil {
		err := e.notifier.ScheduleCompletion(
			endAt,
			sess.blockIndex,
			mode == segment.Break,
		)
		if err != nil {
			slog.Warn("unable to schedule completion notification",
				slog.Any("error", err),
			)
		}
	}

	e.saveBlock(
		sess.ledger.LiveView(0),
		0,
		e.sess.fill(0),
		models.StatusActive,
	)

	return nil
}

// Tick advances the session by recomputing the remaining time from the
// absolute deadline. It drives break reminders, the snapshot cadence,
// and natural completion.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return
	}

	now := e.clock.Now()
	s := e.sess

	if !e.breakNotified && !e.breakNotifyAt.IsZero() &&
		!now.Before(e.breakNotifyAt) {
		e.breakNotified = true
		e.events.emitBreakNotify()
	}

	if s.timeLeft(now) == 0 {
		e.complete(now)
		return
	}

	elapsed := s.secondsUsed(now, e.state)

	e.events.emitTick(s.timeLeft(now), s.fill(elapsed)*100)

	e.tickCount++
	if e.tickCount%snapshotEveryTicks == 0 {
		e.snapshotNow(now)
	}
}

// SwitchMode finalizes the open segment and continues in the other
// mode. The previous mode's category and label context is preserved so
// switching back restores it exactly.
func (e *Engine) SwitchMode(mode segment.Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return e.reject("switch mode", ErrNotRunning)
	}

	s := e.sess
	if mode == s.mode {
		return nil
	}

	now := e.clock.Now()
	elapsed := s.secondsUsed(now, e.state)

	var category, label string

	if mode == segment.Break {
		s.workCategory = s.ledger.OpenCategory()
		s.workLabel = s.ledger.OpenLabel()
		category, label = s.breakCategory, s.breakLabel
	} else {
		s.breakCategory = s.ledger.OpenCategory()
		s.breakLabel = s.ledger.OpenLabel()
		category, label = s.workCategory, s.workLabel
	}

	if seg, ok := s.ledger.SplitAt(elapsed, mode, category, label); ok {
		e.events.emitSegmentBoundary(seg)
	}

	s.mode = mode

	if mode == segment.Break {
		// the reminder is satisfied once a break actually starts
		e.breakNotified = true
	}

	e.checkIn.Reset()
	e.snapshotNow(now)

	return nil
}

// UpdateTags changes the active session's category and label. In work
// mode a category change always creates a segment boundary; a
// label-only change creates one only once the open segment has lasted
// the minimum duration. In break mode only the display fields change.
func (e *Engine) UpdateTags(category, label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return e.reject("update tags", ErrNotRunning)
	}

	s := e.sess

	if s.mode == segment.Break {
		s.workCategory = category
		s.workLabel = label

		return nil
	}

	if category == s.ledger.OpenCategory() &&
		label == s.ledger.OpenLabel() {
		return nil
	}

	now := e.clock.Now()
	elapsed := s.secondsUsed(now, e.state)

	if s.ledger.ShouldSplit(elapsed, category, label) {
		seg, ok := s.ledger.SplitAt(elapsed, s.mode, category, label)
		if ok {
			e.events.emitSegmentBoundary(seg)
		}
	} else {
		s.ledger.Retag(category, label)
	}

	s.workCategory = category
	s.workLabel = label
	e.checkIn.Reset()

	return nil
}

// Pause freezes the session. The open segment is finalized so that
// paused wall-clock time can never leak into the ledger, and a
// one-shot timer routes the session to PausedExpiry if the slot
// boundary passes before it is resumed.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return e.reject("pause", ErrNotRunning)
	}

	now := e.clock.Now()
	s := e.sess
	elapsed := s.secondsUsed(now, e.state)

	seg, ok := s.ledger.SplitAt(
		elapsed,
		s.ledger.OpenKind(),
		s.ledger.OpenCategory(),
		s.ledger.OpenLabel(),
	)
	if ok {
		e.events.emitSegmentBoundary(seg)
	}

	s.pausedSecondsUsed = elapsed
	e.state = StatePaused
	e.checkIn.Reset()

	e.pauseExpiry = e.clock.AfterFunc(
		s.endAt.Sub(now),
		e.handlePausedExpiry,
	)

	e.snapshotNow(now)

	return nil
}

func (e *Engine) handlePausedExpiry() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePaused {
		return
	}

	e.state = StatePausedExpiry
	e.events.emitPausedExpiry()
}

// Resume continues a paused session. The carried visual fill is taken
// from the value captured at pause rather than recomputed from
// seconds, so resuming never moves the fill.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StatePausedExpiry {
		return e.reject("resume", ErrPausedExpired)
	}

	if e.state != StatePaused {
		return e.reject("resume", ErrNotPaused)
	}

	now := e.clock.Now()
	s := e.sess

	if !now.Before(s.endAt) {
		// the expiry timer may not have fired yet
		e.stopPauseExpiry()
		e.state = StatePausedExpiry
		e.events.emitPausedExpiry()

		return ErrPausedExpired
	}

	e.stopPauseExpiry()

	fillAtPause := s.fill(s.pausedSecondsUsed)

	s.previousSegments = append(s.previousSegments, s.ledger.Drain()...)
	s.tracker = newFillTracker(fillAtPause, s.endAt.Sub(now).Seconds())
	s.resumeBase = s.pausedSecondsUsed
	s.resumedAt = now

	e.state = StateRunning
	e.checkIn.Reset()
	e.snapshotNow(now)

	return nil
}

// Stop ends the session manually, reporting the actual partial fill
// instead of forcing it to 1.0.
func (e *Engine) Stop(markComplete bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateRunning, StatePaused, StatePausedExpiry:
	default:
		return e.reject("stop", ErrNotRunning)
	}

	now := e.clock.Now()
	s := e.sess
	elapsed := s.secondsUsed(now, e.state)

	seg, ok := s.ledger.SplitAt(
		elapsed,
		s.ledger.OpenKind(),
		s.ledger.OpenCategory(),
		s.ledger.OpenLabel(),
	)
	if ok {
		e.events.emitSegmentBoundary(seg)
	}

	fill := s.fill(elapsed)

	final := s.previousSegments
	final = append(final, s.ledger.Drain()...)

	status := models.StatusStopped
	if markComplete {
		status = models.StatusCompleted
	}

	e.saveBlock(final, elapsed, fill, status)

	if e.notifier != nil {
		if err := e.notifier.Cancel(s.blockIndex); err != nil {
			slog.Warn("unable to cancel completion notification",
				slog.Any("error", err),
			)
		}
	}

	e.events.emitComplete(Completion{
		BlockIndex:      s.blockIndex,
		Date:            s.date,
		IsBreak:         s.mode == segment.Break,
		SecondsUsed:     elapsed,
		InitialDuration: s.initialDuration,
		Segments:        final,
		VisualFill:      fill,
	})

	e.teardown()
	e.checkIn.Reset()

	return nil
}

// Dismiss acknowledges a completed session and returns the engine to
// idle.
func (e *Engine) Dismiss() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateCompleted {
		return e.reject("dismiss", ErrNotCompleted)
	}

	e.teardown()
	e.checkIn.Reset()

	return nil
}

// CheckIn records an explicit user acknowledgement, resetting the
// automatic-continuation streak.
func (e *Engine) CheckIn() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.checkIn.Reset()
}

// ContinueNext starts a fresh session on the next slot, carrying over
// the work category and label. When auto is true the continuation
// counts toward the check-in streak and is suppressed once the
// threshold is reached.
func (e *Engine) ContinueNext(auto bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateCompleted {
		return e.reject("continue", ErrNotCompleted)
	}

	if auto && e.checkIn.Gate() {
		e.events.emitCheckInRequired()
		return ErrCheckInRequired
	}

	s := e.sess

	next := (s.blockIndex + 1) % block.SlotsPerDay

	date := s.date
	if next == 0 {
		date = date.AddDate(0, 0, 1)
	}

	category, label := s.workCategory, s.workLabel

	e.teardown()

	err := e.start(StartOptions{
		BlockIndex:   next,
		Date:         date,
		Mode:         segment.Work,
		Category:     category,
		Label:        label,
		ExistingFill: 0,
	})
	if err != nil {
		return err
	}

	if auto {
		e.checkIn.Increment()
	} else {
		e.checkIn.Reset()
	}

	return nil
}

// complete handles a natural, boundary-reached completion. The slot's
// time has elapsed regardless of how many active seconds were
// observed, so completion always credits the full slot and forces the
// fill to exactly 1.0.
func (e *Engine) complete(now time.Time) {
	s := e.sess

	elapsed := s.secondsUsed(now, e.state)
	if elapsed > s.initialDuration {
		elapsed = s.initialDuration
	}

	seg, ok := s.ledger.SplitAt(
		elapsed,
		s.ledger.OpenKind(),
		s.ledger.OpenCategory(),
		s.ledger.OpenLabel(),
	)
	if ok {
		e.events.emitSegmentBoundary(seg)
	}

	final := s.previousSegments
	final = append(final, s.ledger.Drain()...)

	e.stopPauseExpiry()
	e.state = StateCompleted

	e.saveBlock(final, s.initialDuration, 1.0, models.StatusCompleted)

	e.events.emitComplete(Completion{
		BlockIndex:      s.blockIndex,
		Date:            s.date,
		IsBreak:         s.mode == segment.Break,
		SecondsUsed:     s.initialDuration,
		InitialDuration: s.initialDuration,
		Segments:        final,
		VisualFill:      1.0,
	})

	if e.publisher != nil {
		if err := e.publisher.Clear(); err != nil {
			slog.Warn("unable to clear run snapshot",
				slog.Any("error", err),
			)
		}
	}
}

// teardown clears the session after a terminal transition. Timers are
// invalidated before state is cleared so a stale tick cannot re-derive
// segments.
func (e *Engine) teardown() {
	e.stopPauseExpiry()

	e.state = StateIdle
	e.sess = nil
	e.tickCount = 0
	e.breakNotified = false
	e.breakNotifyAt = time.Time{}

	if e.publisher != nil {
		if err := e.publisher.Clear(); err != nil {
			slog.Warn("unable to clear run snapshot",
				slog.Any("error", err),
			)
		}
	}
}

func (e *Engine) stopPauseExpiry() {
	if e.pauseExpiry != nil {
		e.pauseExpiry.Stop()
		e.pauseExpiry = nil
	}
}

// snapshotNow publishes and emits a snapshot of the active session.
func (e *Engine) snapshotNow(now time.Time) {
	if e.sess == nil {
		return
	}

	snap := e.sess.snapshot(e.sess.secondsUsed(now, e.state))

	if e.publisher != nil {
		if err := e.publisher.Publish(snap); err != nil {
			slog.Warn("unable to publish run snapshot",
				slog.Any("error", err),
			)
		}
	}

	slog.Debug(spew.Sdump(snap))

	e.events.emitSnapshot(snap)
}

// saveBlock persists the block record, swallowing failures so that a
// transient I/O problem can never roll back recorded work time.
func (e *Engine) saveBlock(
	segs []segment.Segment,
	used uint,
	fill float64,
	status models.BlockStatus,
) {
	if e.repo == nil {
		return
	}

	if err := e.repo.SaveBlock(e.sess.block(segs, used, fill, status)); err != nil {
		slog.Warn("unable to save block",
			slog.Int("block_index", e.sess.blockIndex),
			slog.Any("error", err),
		)
	}
}

// reject logs a caller contract violation and returns the sentinel.
// Steady-state operations never fail; callers are expected to consult
// state before invoking transitions.
func (e *Engine) reject(op string, err error) error {
	slog.Warn("rejected transition",
		slog.String("op", op),
		slog.String("state", string(e.state)),
		slog.Any("error", err),
	)

	return err
}
