package config_test

import (
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/blox/config"
)

func TestEngineConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("BLOX_ENV", "testing")

	xdg.Reload()

	config.InitializePaths()

	ctx := cli.NewContext(
		cli.NewApp(),
		flag.NewFlagSet("test", flag.ContinueOnError),
		nil,
	)

	cfg := config.Engine(ctx)

	if cfg.DayStartHour != 0 {
		t.Errorf("day start hour = %d, want 0", cfg.DayStartHour)
	}

	if cfg.CheckInThreshold != 3 {
		t.Errorf("check-in threshold = %d, want 3", cfg.CheckInThreshold)
	}

	if !cfg.Notify {
		t.Error("notifications should default to enabled")
	}

	if cfg.BreakNotifyAfter != time.Duration(0) {
		t.Errorf(
			"break notify = %v, want disabled by default",
			cfg.BreakNotifyAfter,
		)
	}

	if !strings.HasSuffix(cfg.PathToDB, "blox_testing.db") {
		t.Errorf("db path = %s, want BLOX_ENV-scoped file", cfg.PathToDB)
	}

	if cfg.PathToLog == "" {
		t.Error("log path should be set")
	}
}
