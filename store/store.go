// Package store connects to the data store and manages blocks and run
// snapshots
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/blox/internal/models"
)

const (
	blockBucket = "blocks"
	runBucket   = "runs"

	// runKey is the key of the active run snapshot. Only one session
	// may exist at a time, so the bucket holds at most one entry.
	runKey = "current"
)

var pathToDB string

var errBloxRunning = errors.New(
	"is blox already running? Only one instance can be active at a time",
)

// blockKey orders block records by date, then slot index.
func blockKey(date string, index int) []byte {
	return []byte(fmt.Sprintf("%s/%02d", date, index))
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// SaveBlock creates or overwrites the record for a single block.
func (c *Client) SaveBlock(b models.Block) error {
	value, err := json.Marshal(b)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(blockBucket)).Put(
			blockKey(b.Date, b.Index),
			value,
		)
	})
}

// LoadBlocks returns all block records saved for the given date, in
// slot order.
func (c *Client) LoadBlocks(date string) ([]models.Block, error) {
	var blocks []models.Block

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(blockBucket)).Cursor()

		prefix := []byte(date + "/")

		for k, v := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cur.Next() {
			var b models.Block

			if err := json.Unmarshal(v, &b); err != nil {
				return err
			}

			blocks = append(blocks, b)
		}

		return nil
	})

	return blocks, err
}

// SaveSnapshot stores the active run snapshot, replacing any previous
// one.
func (c *Client) SaveSnapshot(snap models.RunSnapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runBucket)).Put([]byte(runKey), value)
	})
}

// GetSnapshot returns the stored run snapshot, or nil when no
// interrupted run exists.
func (c *Client) GetSnapshot() (*models.RunSnapshot, error) {
	var snap *models.RunSnapshot

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runBucket)).Get([]byte(runKey))
		if len(b) == 0 {
			return nil
		}

		snap = &models.RunSnapshot{}

		return json.Unmarshal(b, snap)
	})

	return snap, err
}

// DeleteSnapshot removes the stored run snapshot.
func (c *Client) DeleteSnapshot() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runBucket)).Delete([]byte(runKey))
	})
}

// Open begins a database connection.
func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errBloxRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(blockBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(runBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
