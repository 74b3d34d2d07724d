package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/segment"
	"github.com/ayoisaiah/blox/store"
)

func newClient(t *testing.T) *store.Client {
	t.Helper()

	c, err := store.NewClient(filepath.Join(t.TempDir(), "blox_test.db"))
	if err != nil {
		t.Fatalf("unable to open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestSaveAndLoadBlocks(t *testing.T) {
	c := newClient(t)

	blocks := []models.Block{
		{
			Date:     "2024-03-05",
			Index:    36,
			Category: "deep-work",
			Status:   models.StatusCompleted,
			Segments: []segment.Segment{
				{Kind: segment.Work, Seconds: 1200},
			},
			UsedSeconds: 1200,
			Progress:    1,
		},
		{
			Date:        "2024-03-05",
			Index:       37,
			Status:      models.StatusStopped,
			UsedSeconds: 340,
			Progress:    0.28,
		},
		// a different date must not appear in the results
		{
			Date:        "2024-03-06",
			Index:       2,
			Status:      models.StatusCompleted,
			UsedSeconds: 1200,
			Progress:    1,
		},
	}

	for _, b := range blocks {
		if err := c.SaveBlock(b); err != nil {
			t.Fatalf("unable to save block: %v", err)
		}
	}

	got, err := c.LoadBlocks("2024-03-05")
	if err != nil {
		t.Fatalf("unable to load blocks: %v", err)
	}

	if diff := cmp.Diff(blocks[:2], got); diff != "" {
		t.Errorf("loaded blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveBlockOverwrites(t *testing.T) {
	c := newClient(t)

	b := models.Block{
		Date:        "2024-03-05",
		Index:       36,
		Status:      models.StatusActive,
		UsedSeconds: 10,
	}

	if err := c.SaveBlock(b); err != nil {
		t.Fatalf("unable to save block: %v", err)
	}

	b.Status = models.StatusCompleted
	b.UsedSeconds = 1200

	if err := c.SaveBlock(b); err != nil {
		t.Fatalf("unable to overwrite block: %v", err)
	}

	got, err := c.LoadBlocks("2024-03-05")
	if err != nil {
		t.Fatalf("unable to load blocks: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d blocks, want 1", len(got))
	}

	if got[0].Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", got[0].Status)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newClient(t)

	got, err := c.GetSnapshot()
	if err != nil {
		t.Fatalf("unable to read empty snapshot: %v", err)
	}

	if got != nil {
		t.Fatal("expected no snapshot in a fresh store")
	}

	startedAt := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

	snap := models.RunSnapshot{
		RunID:               startedAt.Format(time.RFC3339Nano),
		StartedAt:           startedAt,
		InitialDurationSecs: 1200,
		Segments: []segment.Segment{
			{Kind: segment.Work, Category: "deep-work", Seconds: 400},
		},
		CurrentSegmentStart: 400,
		CurrentMode:         segment.Work,
		CurrentCategory:     "deep-work",
		LastWorkCategory:    "deep-work",
		VisualFill:          1.0 / 3.0,
	}

	if err = c.SaveSnapshot(snap); err != nil {
		t.Fatalf("unable to save snapshot: %v", err)
	}

	got, err = c.GetSnapshot()
	if err != nil {
		t.Fatalf("unable to read snapshot: %v", err)
	}

	if diff := cmp.Diff(&snap, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	if err = c.DeleteSnapshot(); err != nil {
		t.Fatalf("unable to delete snapshot: %v", err)
	}

	got, err = c.GetSnapshot()
	if err != nil {
		t.Fatalf("unable to re-read snapshot: %v", err)
	}

	if got != nil {
		t.Error("snapshot still present after delete")
	}
}
