// Package notify schedules desktop notifications for slot boundaries.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/blox/internal/clock"
)

// Scheduler delivers a desktop notification when a slot boundary is
// reached. Deliveries are scheduled against absolute instants and can
// be cancelled per block.
type Scheduler struct {
	clk     clock.Clock
	pending map[int]clock.Timer
	mu      sync.Mutex
	enabled bool
}

// NewScheduler returns a notification scheduler. When enabled is
// false, all scheduling calls are no-ops.
func NewScheduler(clk clock.Clock, enabled bool) *Scheduler {
	return &Scheduler{
		clk:     clk,
		enabled: enabled,
		pending: make(map[int]clock.Timer),
	}
}

// ScheduleCompletion arranges a notification at the given instant. A
// previously scheduled notification for the same block is replaced.
func (s *Scheduler) ScheduleCompletion(
	at time.Time,
	blockIndex int,
	isBreak bool,
) error {
	if !s.enabled {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[blockIndex]; ok {
		t.Stop()
	}

	d := at.Sub(s.clk.Now())
	if d < 0 {
		d = 0
	}

	s.pending[blockIndex] = s.clk.AfterFunc(d, func() {
		s.fire(blockIndex, isBreak)
	})

	return nil
}

// Cancel drops the pending notification for the given block, if any.
func (s *Scheduler) Cancel(blockIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[blockIndex]; ok {
		t.Stop()
		delete(s.pending, blockIndex)
	}

	return nil
}

func (s *Scheduler) fire(blockIndex int, isBreak bool) {
	s.mu.Lock()
	delete(s.pending, blockIndex)
	s.mu.Unlock()

	title := "Block complete"
	msg := fmt.Sprintf("Block %d has ended. On to the next one!", blockIndex+1)

	if isBreak {
		title = "Break over"
		msg = fmt.Sprintf("The break in block %d has ended", blockIndex+1)
	}

	err := beeep.Notify(title, msg, "")
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}
}
