// Package snapshot mirrors the active run to a status file so that
// widgets and other external observers can read it without holding the
// database lock.
package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/ayoisaiah/blox/internal/models"
)

// FilePublisher writes the run snapshot to a well-known path.
// Publishing is best-effort: readers tolerate a missing or stale file.
type FilePublisher struct {
	path string
}

// NewFilePublisher returns a publisher writing to the given path.
func NewFilePublisher(path string) *FilePublisher {
	return &FilePublisher{path: path}
}

// Publish replaces the status file with the given snapshot.
func (p *FilePublisher) Publish(snap models.RunSnapshot) error {
	f, err := os.Create(p.path)
	if err != nil {
		return err
	}

	defer func() {
		ferr := f.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(f)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// Clear removes the status file. A file that never existed is not an
// error.
func (p *FilePublisher) Clear() error {
	err := os.Remove(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// Read returns the published snapshot, or nil when no run is active.
func Read(path string) (*models.RunSnapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var snap models.RunSnapshot

	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}
