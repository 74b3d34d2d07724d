package engine_test

import (
	"testing"
	"time"

	"github.com/ayoisaiah/blox/engine"
	"github.com/ayoisaiah/blox/internal/clock"
	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/segment"
)

func workSnapshot(startedAt time.Time) models.RunSnapshot {
	return models.RunSnapshot{
		RunID:               startedAt.Format(time.RFC3339Nano),
		StartedAt:           startedAt,
		InitialDurationSecs: 1200,
		Segments: []segment.Segment{
			{
				Kind:        segment.Work,
				Category:    "deep-work",
				Seconds:     400,
				StartOffset: 0,
			},
		},
		CurrentSegmentStart: 400,
		CurrentMode:         segment.Work,
		CurrentCategory:     "deep-work",
		LastWorkCategory:    "deep-work",
		VisualFill:          400.0 / 1200.0,
	}
}

func TestRestoreMidSession(t *testing.T) {
	now := slotStart.Add(8 * time.Minute)
	eng, clk, _ := newEngine(t, now, engine.Options{})

	rec := engine.NewRecovery(eng)

	if err := rec.Restore(workSnapshot(slotStart)); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if got := eng.State(); got != engine.StateRunning {
		t.Fatalf("state = %s, want running", got)
	}

	if got := eng.TimeLeft(); got != 720 {
		t.Errorf("timeLeft = %d, want 720", got)
	}

	if got := eng.BlockIndex(); got != 36 {
		t.Errorf("block index = %d, want 36", got)
	}

	fill := eng.VisualFill()
	if fill < 0.33 || fill > 0.34 {
		t.Errorf("fill after restore = %v, want ~1/3", fill)
	}

	// the restored session still completes exactly at the boundary
	tickFor(eng, clk, 720)

	if got := eng.State(); got != engine.StateCompleted {
		t.Errorf("state = %s, want completed at boundary", got)
	}
}

// Scenario: the host was suspended for longer than the remaining real
// time. Restoring forces completion with full credit, mirroring
// natural completion.
func TestRestoreAfterBoundary(t *testing.T) {
	now := slotStart.Add(25 * time.Minute)

	clk := clock.NewFake(now)
	events := &recorder{}
	eng := engine.New(clk, nil, nil, nil, events.events(), engine.Options{})
	rec := engine.NewRecovery(eng)

	if err := rec.Restore(workSnapshot(slotStart)); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if got := eng.State(); got != engine.StateCompleted {
		t.Fatalf("state = %s, want completed", got)
	}

	if len(events.completions) != 1 {
		t.Fatalf("got %d completions, want 1", len(events.completions))
	}

	c := events.completions[0]

	if c.SecondsUsed != 1200 {
		t.Errorf("secondsUsed = %d, want full credit 1200", c.SecondsUsed)
	}

	if c.VisualFill != 1.0 {
		t.Errorf("fill = %v, want exactly 1.0", c.VisualFill)
	}
}

func TestResumeFromBackgroundPastBoundary(t *testing.T) {
	eng, clk, events := newEngine(t, slotStart, engine.Options{})
	rec := engine.NewRecovery(eng)

	startWork(t, eng, slotStart)
	tickFor(eng, clk, 100)

	// host suspends; no ticks arrive while the boundary passes
	clk.Advance(30 * time.Minute)
	rec.OnResume()

	if got := eng.State(); got != engine.StateCompleted {
		t.Fatalf("state = %s, want completed", got)
	}

	c := events.completions[0]

	if c.SecondsUsed != 1200 {
		t.Errorf("secondsUsed = %d, want full credit 1200", c.SecondsUsed)
	}
}

func TestResumeFromBackgroundMidSlot(t *testing.T) {
	eng, clk, events := newEngine(t, slotStart, engine.Options{
		BreakNotifyAfter: 5 * time.Minute,
	})
	rec := engine.NewRecovery(eng)

	startWork(t, eng, slotStart)
	tickFor(eng, clk, 60)

	// suspended across the break-notify deadline but not the boundary
	clk.Advance(10 * time.Minute)
	rec.OnResume()

	if got := eng.State(); got != engine.StateRunning {
		t.Fatalf("state = %s, want running", got)
	}

	if events.breakNotices != 1 {
		t.Errorf(
			"break notify fired %d times on resume, want 1",
			events.breakNotices,
		)
	}

	if got := eng.TimeLeft(); got != 1200-60-600 {
		t.Errorf("timeLeft = %d, want 540", got)
	}
}

func TestResumeFromBackgroundWhilePaused(t *testing.T) {
	eng, clk, events := newEngine(t, slotStart, engine.Options{})
	rec := engine.NewRecovery(eng)

	startWork(t, eng, slotStart)
	tickFor(eng, clk, 100)

	if err := eng.Pause(); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	clk.Advance(40 * time.Minute)
	rec.OnResume()

	if got := eng.State(); got != engine.StatePausedExpiry {
		t.Errorf("state = %s, want paused_expiry", got)
	}

	// unattended pause time is never silently credited
	if len(events.completions) != 0 {
		t.Errorf("got %d completions, want 0", len(events.completions))
	}
}

func TestOnSuspendPublishesSnapshot(t *testing.T) {
	eng, clk, events := newEngine(t, slotStart, engine.Options{})
	rec := engine.NewRecovery(eng)

	startWork(t, eng, slotStart)
	tickFor(eng, clk, 3)

	before := len(events.snapshots)

	rec.OnSuspend()

	if got := len(events.snapshots); got != before+1 {
		t.Errorf("snapshots = %d, want %d", got, before+1)
	}
}
