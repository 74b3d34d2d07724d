package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

var engineCfg = &EngineConfig{}

var once sync.Once

const (
	defaultDayStartHour     = 0
	defaultCheckInThreshold = 3
)

const (
	configDayStartHour     = "day_start_hour"
	configCheckInThreshold = "check_in_threshold"
	configBreakNotifyMins  = "break_notify_mins"
	configNotify           = "notify"
	configSessionCmd       = "session_cmd"
	configDarkTheme        = "dark_theme"
)

// EngineConfig represents the program configuration derived from the
// config file and command-line arguments.
type EngineConfig struct {
	PathToConfig     string        `json:"path_to_config"`
	PathToDB         string        `json:"path_to_db"`
	PathToStatus     string        `json:"path_to_status"`
	PathToLog        string        `json:"path_to_log"`
	SessionCmd       string        `json:"session_cmd"`
	Category         string        `json:"category"`
	Label            string        `json:"label"`
	BreakNotifyAfter time.Duration `json:"break_notify_after"`
	DayStartHour     int           `json:"day_start_hour"`
	CheckInThreshold uint          `json:"check_in_threshold"`
	Notify           bool          `json:"notify"`
	DarkTheme        bool          `json:"dark_theme"`
}

// engineDefaults sets the program's default configuration values.
func engineDefaults() {
	viper.SetDefault(configDayStartHour, defaultDayStartHour)
	viper.SetDefault(configCheckInThreshold, defaultCheckInThreshold)
	viper.SetDefault(configBreakNotifyMins, 0)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configSessionCmd, "")
	viper.SetDefault(configDarkTheme, true)
}

// createEngineConfig writes the default settings to the user's config
// directory on first run.
func createEngineConfig() error {
	engineDefaults()

	err := viper.WriteConfigAs(engineCfg.PathToConfig)
	if err != nil {
		return err
	}

	pterm.Info.Printfln(
		"Default settings have been saved to: %s",
		engineCfg.PathToConfig,
	)

	return nil
}

// initEngineConfig initialises the application configuration, creating
// the config file with defaults if it does not exist yet.
func initEngineConfig() error {
	viper.SetConfigName(strings.TrimSuffix(configFileName, ".yml"))
	viper.SetConfigType("yaml")

	engineCfg.PathToConfig = configFilePath

	viper.AddConfigPath(filepath.Dir(engineCfg.PathToConfig))

	engineDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return createEngineConfig()
		}

		return err
	}

	return nil
}

func setEngineConfig(ctx *cli.Context) {
	engineCfg.PathToDB = dbFilePath
	engineCfg.PathToStatus = statusFilePath
	engineCfg.PathToLog = logFilePath

	// set from config file
	engineCfg.DayStartHour = viper.GetInt(configDayStartHour)
	engineCfg.CheckInThreshold = viper.GetUint(configCheckInThreshold)
	engineCfg.BreakNotifyAfter = time.Duration(
		viper.GetInt(configBreakNotifyMins),
	) * time.Minute
	engineCfg.Notify = viper.GetBool(configNotify)
	engineCfg.SessionCmd = viper.GetString(configSessionCmd)
	engineCfg.DarkTheme = viper.GetBool(configDarkTheme)

	// set from command-line arguments
	engineCfg.Category = strings.TrimSpace(ctx.String("category"))
	engineCfg.Label = strings.TrimSpace(ctx.String("label"))

	if ctx.Bool("disable-notification") {
		engineCfg.Notify = false
	}

	if ctx.String("session-cmd") != "" {
		engineCfg.SessionCmd = ctx.String("session-cmd")
	}

	if ctx.IsSet("day-start") {
		engineCfg.DayStartHour = ctx.Int("day-start")
	}

	if ctx.Uint("break-notify") > 0 {
		engineCfg.BreakNotifyAfter = time.Duration(
			ctx.Uint("break-notify"),
		) * time.Minute
	}
}

// Engine initializes and returns the engine configuration. The
// initialization is done just once no matter how many times it is
// called.
func Engine(ctx *cli.Context) *EngineConfig {
	once.Do(func() {
		err := initEngineConfig()
		if err != nil {
			pterm.Error.Printfln(
				"%s: %s",
				errInitFailed.Error(),
				err.Error(),
			)
			os.Exit(1)
		}

		setEngineConfig(ctx)
	})

	return engineCfg
}
