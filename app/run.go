package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/blox/config"
	"github.com/ayoisaiah/blox/engine"
	"github.com/ayoisaiah/blox/internal/block"
	"github.com/ayoisaiah/blox/internal/clock"
	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/segment"
	"github.com/ayoisaiah/blox/internal/timeutil"
	"github.com/ayoisaiah/blox/internal/ui"
	"github.com/ayoisaiah/blox/notify"
	"github.com/ayoisaiah/blox/snapshot"
	"github.com/ayoisaiah/blox/store"
)

// runner drives the engine with a 1-second ticker and renders its
// events on the command line.
type runner struct {
	eng *engine.Engine
	rec *engine.Recovery
	db  *store.Client
	cfg *config.EngineConfig
}

// runSessionCmd executes the configured session_cmd after a block ends.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

func formatSeconds(secs uint) string {
	return (time.Duration(secs) * time.Second).String()
}

// countdown prints the remaining time and visual fill for the active
// block.
func (r *runner) countdown(timeLeft uint, progress float64) {
	fmt.Fprintf(
		os.Stdout,
		"\r🕒%s:%s · %s",
		pterm.Yellow(fmt.Sprintf("%02d", timeLeft/60)),
		pterm.Yellow(fmt.Sprintf("%02d", timeLeft%60)),
		ui.Cyan(fmt.Sprintf("%.0f%% filled", progress)),
	)
}

// printSession prints the header for the active block before the
// countdown starts.
func (r *runner) printSession() {
	idx := r.eng.BlockIndex()
	if idx < 0 {
		return
	}

	num := block.DisplayNumber(idx, r.cfg.DayStartHour)

	var text string

	if r.eng.Mode() == segment.Break {
		text = ui.Blue(fmt.Sprintf("[Break %d/%d]", num, block.SlotsPerDay))
	} else {
		text = ui.Green(fmt.Sprintf("[Block %d/%d]", num, block.SlotsPerDay))
	}

	var tags string

	if r.cfg.Category != "" {
		tags = " >>> " + r.cfg.Category

		if r.cfg.Label != "" {
			tags += " | " + r.cfg.Label
		}
	}

	_, endAt := block.SlotBounds(time.Now(), idx)

	fmt.Fprintf(
		os.Stdout,
		"%s (until %s)%s\n",
		text,
		ui.Highlight(endAt.Format("03:04 PM")),
		tags,
	)

	fmt.Fprint(os.Stdout, "\033[s")

	r.countdown(r.eng.TimeLeft(), r.eng.VisualFill()*100)
}

func (r *runner) onTick(timeLeft uint, progress float64) {
	fmt.Fprint(os.Stdout, "\033[u\033[K")

	r.countdown(timeLeft, progress)
}

func (r *runner) onSegmentBoundary(seg segment.Segment) {
	slog.Info("segment finalized",
		slog.String("kind", string(seg.Kind)),
		slog.String("category", seg.Category),
		slog.Uint64("seconds", uint64(seg.Seconds)),
	)
}

func (r *runner) onBreakNotify() {
	fmt.Fprint(os.Stdout, "\n")
	pterm.Info.Println(
		"You have been at it for a while. Consider taking a break",
	)
	fmt.Fprint(os.Stdout, "\033[s")
}

func (r *runner) onSnapshot(snap models.RunSnapshot) {
	if err := r.db.SaveSnapshot(snap); err != nil {
		slog.Warn("unable to save run snapshot", slog.Any("error", err))
	}
}

func (r *runner) onComplete(c engine.Completion) {
	fmt.Fprint(os.Stdout, "\033[u\033[K")

	num := block.DisplayNumber(c.BlockIndex, r.cfg.DayStartHour)

	if c.IsBreak {
		fmt.Fprintf(
			os.Stdout,
			"\n%s\n",
			ui.Blue(fmt.Sprintf("Break block %d is over", num)),
		)
	} else {
		fmt.Fprintf(
			os.Stdout,
			"\n%s\n",
			ui.Green(fmt.Sprintf(
				"Block %d complete: %s recorded",
				num,
				formatSeconds(c.SecondsUsed),
			)),
		)
	}

	if err := r.db.DeleteSnapshot(); err != nil {
		slog.Warn("unable to delete run snapshot", slog.Any("error", err))
	}

	if err := runSessionCmd(r.cfg.SessionCmd); err != nil {
		pterm.Error.Printfln("Unable to run session command: %s", err.Error())
	}
}

func (r *runner) onCheckInRequired() {
	slog.Info("check-in required before continuing")
}

// startOpts builds the start request for the slot containing the
// current time, picking up any partial fill already recorded on it.
func (r *runner) startOpts(breakMode bool) engine.StartOptions {
	now := time.Now()
	idx := block.IndexForInstant(now)

	opts := engine.StartOptions{
		Date:         now,
		BlockIndex:   idx,
		Category:     r.cfg.Category,
		Label:        r.cfg.Label,
		Mode:         segment.Work,
		ExistingFill: -1,
	}

	if breakMode {
		opts.Mode = segment.Break
	}

	blocks, err := r.db.LoadBlocks(timeutil.DayKey(now))
	if err != nil {
		slog.Warn("unable to load existing blocks",
			slog.Any("error", err),
		)

		return opts
	}

	for _, b := range blocks {
		if b.Index == idx {
			opts.ExistingSegments = b.Segments
			opts.ExistingFill = b.Progress

			break
		}
	}

	return opts
}

// continueNext rolls the timer into the next block, pausing for an
// explicit check-in once too many blocks have auto-continued.
func (r *runner) continueNext() (bool, error) {
	err := r.eng.ContinueNext(true)
	if err == nil {
		r.printSession()
		return true, nil
	}

	if !errors.Is(err, engine.ErrCheckInRequired) {
		return false, err
	}

	fmt.Fprint(os.Stdout, "\n")

	yes, promptErr := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(true).
		Show("Still there? Continue into the next block?")
	if promptErr != nil || !yes {
		if derr := r.eng.Dismiss(); derr != nil {
			slog.Warn("unable to dismiss session", slog.Any("error", derr))
		}

		return false, nil
	}

	r.eng.CheckIn()

	if err := r.eng.ContinueNext(false); err != nil {
		return false, err
	}

	r.printSession()

	return true, nil
}

// run blocks until the timer is stopped or interrupted.
func (r *runner) run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	defer signal.Stop(sigCh)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		if r.eng.State() == engine.StateCompleted {
			cont, err := r.continueNext()
			if err != nil {
				return err
			}

			if !cont {
				return nil
			}
		}

		select {
		case <-sigCh:
			// persist the snapshot so the session can be picked up on
			// the next invocation
			r.rec.OnSuspend()

			fmt.Fprint(os.Stdout, "\n")
			pterm.Info.Println(
				"Session saved. Run blox again to pick up where you left off",
			)

			return nil
		case <-ticker.C:
			r.eng.Tick()
		}
	}
}

// runBlox wires the engine to its collaborators and drives it until the
// session ends.
func runBlox(ctx *cli.Context) error {
	cfg := config.Engine(ctx)

	initLogger(cfg.PathToLog)

	ui.DarkTheme = cfg.DarkTheme

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	r := &runner{db: db, cfg: cfg}

	clk := clock.New()

	r.eng = engine.New(
		clk,
		db,
		notify.NewScheduler(clk, cfg.Notify),
		snapshot.NewFilePublisher(cfg.PathToStatus),
		engine.Events{
			Tick:            r.onTick,
			SegmentBoundary: r.onSegmentBoundary,
			BreakNotify:     r.onBreakNotify,
			Snapshot:        r.onSnapshot,
			Complete:        r.onComplete,
			CheckInRequired: r.onCheckInRequired,
		},
		engine.Options{
			DayStartHour:     cfg.DayStartHour,
			BreakNotifyAfter: cfg.BreakNotifyAfter,
			CheckInThreshold: cfg.CheckInThreshold,
		},
	)

	r.rec = engine.NewRecovery(r.eng)

	snap, err := db.GetSnapshot()
	if err != nil {
		return err
	}

	if snap != nil && ctx.Bool("reset") {
		if err := db.DeleteSnapshot(); err != nil {
			return err
		}

		snap = nil
	}

	if snap != nil {
		if err := r.rec.Restore(*snap); err != nil {
			return err
		}

		pterm.Info.Println("Recovered an interrupted session")
	} else {
		if err := r.eng.Start(r.startOpts(ctx.Bool("break"))); err != nil {
			return err
		}
	}

	if r.eng.State() == engine.StateRunning {
		r.printSession()
	}

	return r.run()
}
