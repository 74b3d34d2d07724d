package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/blox/config"
	"github.com/ayoisaiah/blox/internal/segment"
	"github.com/ayoisaiah/blox/internal/timeutil"
	"github.com/ayoisaiah/blox/snapshot"
	"github.com/ayoisaiah/blox/store"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editConfigAction handles the edit-config command which opens the blox
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.Engine(ctx)

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// listAction handles the list command and prints a table of the blocks
// recorded on a single day.
func listAction(ctx *cli.Context) error {
	cfg := config.Engine(ctx)

	date := time.Now()

	if ctx.String("date") != "" {
		d, err := dateparser.Parse(&dateparser.Configuration{
			CurrentTime: date,
		}, ctx.String("date"))
		if err != nil {
			return fmt.Errorf("unable to parse date: %w", err)
		}

		date = d.Time
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	blocks, err := db.LoadBlocks(timeutil.DayKey(date))
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(blocks)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listBlocks(blocks, cfg.DayStartHour)
}

// statusAction handles the status command and prints the status of the
// currently running block timer.
func statusAction(_ *cli.Context) error {
	dbFilePath := config.DBFilePath()
	statusFilePath := config.StatusFilePath()

	var fileMode fs.FileMode = 0o600

	_, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// This means blox is not running, so no status to report
	if err == nil {
		return nil
	}

	if !errors.Is(err, bolt.ErrDatabaseOpen) &&
		!errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	snap, err := snapshot.Read(statusFilePath)
	if err != nil || snap == nil {
		// a missing or unreadable file should not return an error
		return nil
	}

	endAt := snap.StartedAt.Add(
		time.Duration(snap.InitialDurationSecs) * time.Second,
	)

	left := time.Until(endAt)
	if left < 0 {
		return nil
	}

	text := "[Work]"

	if snap.CurrentMode == segment.Break {
		text = "[Break]"
	}

	if snap.CurrentCategory != "" {
		text = fmt.Sprintf(
			"%s %s",
			text,
			snap.CurrentCategory,
		)
	}

	pterm.Printfln(
		"%s: %02d:%02d",
		text,
		int(left.Minutes()),
		int(left.Seconds())%60,
	)

	return nil
}

// defaultAction starts or recovers the block timer on the slot
// containing the current time.
func defaultAction(ctx *cli.Context) error {
	return runBlox(ctx)
}
