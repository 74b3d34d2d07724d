package store

import (
	"github.com/ayoisaiah/blox/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveBlock updates a block record. The record is created if it
	// doesn't exist already, or overwritten if it does.
	SaveBlock(b models.Block) error
	// LoadBlocks returns the block records saved for a date
	LoadBlocks(date string) ([]models.Block, error)
	// SaveSnapshot stores the active run snapshot
	SaveSnapshot(snap models.RunSnapshot) error
	// GetSnapshot returns a previously stored run snapshot (if any)
	GetSnapshot() (*models.RunSnapshot, error)
	// DeleteSnapshot deletes the stored run snapshot
	DeleteSnapshot() error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
