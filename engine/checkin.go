package engine

// DefaultCheckInThreshold is the number of consecutive fully-automatic
// continuations allowed before a check-in is required.
const DefaultCheckInThreshold = 3

// CheckInCounter tracks consecutive fully-automatic continuations and
// trips a gate requiring explicit user acknowledgement. Any explicit
// user action resets it.
type CheckInCounter struct {
	count     uint
	threshold uint
}

// NewCheckInCounter returns a counter with the given threshold. A zero
// threshold falls back to the default.
func NewCheckInCounter(threshold uint) *CheckInCounter {
	if threshold == 0 {
		threshold = DefaultCheckInThreshold
	}

	return &CheckInCounter{threshold: threshold}
}

// Gate reports whether automatic continuation must be suppressed until
// the user checks in.
func (c *CheckInCounter) Gate() bool {
	return c.count >= c.threshold
}

// Increment records one fully-automatic continuation.
func (c *CheckInCounter) Increment() {
	c.count++
}

// Reset clears the streak. Called on any explicit user action.
func (c *CheckInCounter) Reset() {
	c.count = 0
}

// Count returns the current streak length.
func (c *CheckInCounter) Count() uint {
	return c.count
}
