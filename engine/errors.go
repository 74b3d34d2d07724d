package engine

import "github.com/ayoisaiah/blox/internal/apperr"

var (
	// ErrSessionActive is returned when starting a session while
	// another one exists.
	ErrSessionActive = &apperr.Error{
		Message: "a session is already active: stop or dismiss it first",
	}

	// ErrWrongSlot is returned when starting on a slot that does not
	// contain the current instant. Past and future slots are always
	// rejected, never clamped to the current one.
	ErrWrongSlot = &apperr.Error{
		Message: "sessions can only start on the slot containing the current time",
	}

	// ErrSlotElapsed is returned when the target slot has no real time
	// left.
	ErrSlotElapsed = &apperr.Error{
		Message: "the slot has no time remaining",
	}

	// ErrNoVisualRoom is returned when a work session is started on a
	// slot that is already visually full.
	ErrNoVisualRoom = &apperr.Error{
		Message: "the block is already fully recorded",
	}

	// ErrNotRunning is returned by operations that require a running
	// session.
	ErrNotRunning = &apperr.Error{
		Message: "no running session",
	}

	// ErrNotPaused is returned by resume when no paused session exists.
	ErrNotPaused = &apperr.Error{
		Message: "no paused session",
	}

	// ErrPausedExpired is returned by resume when the slot boundary
	// passed while the session was paused. Paused wall-clock time is
	// never credited.
	ErrPausedExpired = &apperr.Error{
		Message: "the slot ended while the session was paused",
	}

	// ErrCheckInRequired is returned when automatic continuation is
	// suppressed until the user checks in.
	ErrCheckInRequired = &apperr.Error{
		Message: "too many automatic continuations: check in to continue",
	}

	// ErrNotCompleted is returned by dismiss and continuation when no
	// completed session is waiting.
	ErrNotCompleted = &apperr.Error{
		Message: "no completed session to dismiss",
	}
)
