// Package models defines the persisted shapes shared by the store and
// the snapshot publisher.
package models

import (
	"time"

	"github.com/ayoisaiah/blox/internal/segment"
)

// BlockStatus describes the lifecycle state of a persisted block.
type BlockStatus string

const (
	StatusActive    BlockStatus = "active"
	StatusCompleted BlockStatus = "completed"
	StatusStopped   BlockStatus = "stopped"
)

// Block is the persisted record of a single slot on a single day.
type Block struct {
	Date        string            `json:"date"`
	Category    string            `json:"category,omitempty"`
	Label       string            `json:"label,omitempty"`
	Status      BlockStatus       `json:"status"`
	Segments    []segment.Segment `json:"segments"`
	Index       int               `json:"index"`
	UsedSeconds uint              `json:"used_seconds"`
	Progress    float64           `json:"progress"`
}

// RunSnapshot is a periodic projection of the active session,
// sufficient to resume it after full process loss. Live segments
// include the synthesized in-progress tail.
type RunSnapshot struct {
	StartedAt           time.Time         `json:"started_at"`
	RunID               string            `json:"run_id"`
	CurrentMode         segment.Kind      `json:"current_mode"`
	CurrentCategory     string            `json:"current_category,omitempty"`
	CurrentLabel        string            `json:"current_label,omitempty"`
	LastWorkCategory    string            `json:"last_work_category,omitempty"`
	Segments            []segment.Segment `json:"segments"`
	InitialDurationSecs uint              `json:"initial_duration_seconds"`
	CurrentSegmentStart uint              `json:"current_segment_start"`
	VisualFill          float64           `json:"visual_fill"`
}
