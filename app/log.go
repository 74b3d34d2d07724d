package app

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// initLogger routes the default slog logger to a rotating file so that
// diagnostics never interleave with the countdown display.
func initLogger(pathToLog string) {
	logger := slog.New(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   pathToLog,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}, nil))

	slog.SetDefault(logger)
}
