// Package block divides a day into 72 fixed 20-minute slots and
// provides pure arithmetic over them.
package block

import (
	"time"

	"github.com/ayoisaiah/blox/internal/timeutil"
)

const (
	// SlotSeconds is the fixed length of a slot in seconds.
	SlotSeconds = 1200

	// SlotsPerDay is the number of slots in a 24-hour day.
	SlotsPerDay = 72

	slotsPerHour = 3
)

// IndexForInstant returns the index of the slot containing the given
// instant. The index is counted from midnight regardless of the
// configured display numbering.
func IndexForInstant(now time.Time) int {
	midnight := timeutil.RoundToStart(now)

	return int(now.Sub(midnight).Seconds()) / SlotSeconds
}

// SlotBounds returns the start and end instants of the slot with the
// given index on the day containing date. Index must be in [0,71];
// anything else is a caller contract violation.
func SlotBounds(date time.Time, index int) (start, end time.Time) {
	midnight := timeutil.RoundToStart(date)

	start = midnight.Add(time.Duration(index) * SlotSeconds * time.Second)
	end = start.Add(SlotSeconds * time.Second)

	return start, end
}

// RemainingSeconds returns the number of whole seconds left in the
// slot with the given index, or 0 if the slot has already elapsed.
func RemainingSeconds(index int, now time.Time) uint {
	_, end := SlotBounds(now, index)

	left := end.Sub(now).Seconds()
	if left < 0 {
		return 0
	}

	return uint(left)
}

// DisplayNumber renumbers a slot index so that the slot beginning at
// the configured day-start hour is slot 1.
func DisplayNumber(index, dayStartHour int) uint {
	shift := dayStartHour * slotsPerHour

	return uint((index-shift+SlotsPerDay)%SlotsPerDay) + 1
}
