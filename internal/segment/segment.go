// Package segment records the typed time segments that make up a
// block session.
package segment

import "fmt"

// Kind distinguishes work time from break time.
type Kind string

const (
	Work  Kind = "work"
	Break Kind = "break"
)

// MinSeconds is the smallest segment a label-only change is allowed to
// produce. Shorter label edits update the open segment in place so that
// rapid edits do not fragment the ledger into noise segments.
const MinSeconds = 10

// Segment is a contiguous, typed sub-interval of a session. A segment
// is immutable once finalized; only the open tail of the ledger may
// still change.
type Segment struct {
	Kind        Kind   `json:"kind"`
	Category    string `json:"category,omitempty"`
	Label       string `json:"label,omitempty"`
	Seconds     uint   `json:"seconds"`
	StartOffset uint   `json:"start_offset"`
}

// Ledger is an ordered, append-only record of the segments accrued
// since the session was last started or resumed. The in-progress
// segment is derived state: it exists only as the open offset, kind,
// and tags until a split finalizes it.
type Ledger struct {
	category  string
	label     string
	segments  []Segment
	openStart uint
	kind      Kind
}

// NewLedger returns a ledger with an open segment of the given kind
// beginning at the given offset.
func NewLedger(kind Kind, category, label string, start uint) *Ledger {
	return &Ledger{
		kind:      kind,
		category:  category,
		label:     label,
		openStart: start,
	}
}

// SplitAt finalizes the open segment at the given elapsed offset and
// opens a new one of the given kind and tags. The finalized segment is
// returned when its duration is greater than zero; zero-length open
// segments are discarded rather than recorded.
func (l *Ledger) SplitAt(
	elapsed uint,
	kind Kind,
	category, label string,
) (Segment, bool) {
	if elapsed < l.openStart {
		panic(fmt.Sprintf(
			"segment: split at %d before open segment start %d",
			elapsed,
			l.openStart,
		))
	}

	var (
		seg Segment
		ok  bool
	)

	if dur := elapsed - l.openStart; dur > 0 {
		seg = Segment{
			Kind:        l.kind,
			Category:    l.category,
			Label:       l.label,
			Seconds:     dur,
			StartOffset: l.openStart,
		}
		l.segments = append(l.segments, seg)
		ok = true
	}

	l.openStart = elapsed
	l.kind = kind
	l.category = category
	l.label = label

	return seg, ok
}

// ShouldSplit reports whether changing the open segment's tags to the
// given category and label warrants a boundary at the given offset. A
// category change always splits; a label-only change splits only once
// the open segment has reached the minimum duration.
func (l *Ledger) ShouldSplit(elapsed uint, category, label string) bool {
	if category != l.category {
		return true
	}

	if label == l.label {
		return false
	}

	return elapsed-l.openStart >= MinSeconds
}

// Retag updates the open segment's tags in place without creating a
// boundary.
func (l *Ledger) Retag(category, label string) {
	l.category = category
	l.label = label
}

// LiveView returns the finalized segments plus a synthesized
// in-progress tail at the given offset, without mutating the ledger.
func (l *Ledger) LiveView(elapsed uint) []Segment {
	view := make([]Segment, len(l.segments), len(l.segments)+1)
	copy(view, l.segments)

	if elapsed > l.openStart {
		view = append(view, Segment{
			Kind:        l.kind,
			Category:    l.category,
			Label:       l.label,
			Seconds:     elapsed - l.openStart,
			StartOffset: l.openStart,
		})
	}

	return view
}

// Seconds returns the total seconds recorded by the ledger at the
// given offset, including the in-progress tail.
func (l *Ledger) Seconds(elapsed uint) uint {
	var total uint
	for _, seg := range l.segments {
		total += seg.Seconds
	}

	if elapsed > l.openStart {
		total += elapsed - l.openStart
	}

	return total
}

// Drain removes and returns all finalized segments, leaving the open
// segment in place.
func (l *Ledger) Drain() []Segment {
	segs := l.segments
	l.segments = nil

	return segs
}

// Segments returns the finalized segments.
func (l *Ledger) Segments() []Segment {
	return l.segments
}

// OpenStart returns the offset at which the open segment began.
func (l *Ledger) OpenStart() uint {
	return l.openStart
}

// OpenKind returns the kind of the open segment.
func (l *Ledger) OpenKind() Kind {
	return l.kind
}

// OpenCategory returns the category of the open segment.
func (l *Ledger) OpenCategory() string {
	return l.category
}

// OpenLabel returns the label of the open segment.
func (l *Ledger) OpenLabel() string {
	return l.label
}

// Total sums the seconds of the given segments.
func Total(segs []Segment) uint {
	var total uint
	for _, seg := range segs {
		total += seg.Seconds
	}

	return total
}
