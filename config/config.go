// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

const Version = "v0.1.0"

var (
	configDir      = "blox"
	configFileName = "config.yml"
	dbFileName     = "blox.db"
	statusFileName = "status.json"
	logFileName    = "blox.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

// Dir returns the name of the application's configuration directory.
func Dir() string {
	return configDir
}

// DBFilePath returns the path to the database file.
func DBFilePath() string {
	return dbFilePath
}

// ConfigFilePath returns the path to the configuration file.
func ConfigFilePath() string {
	return configFilePath
}

// StatusFilePath returns the path to the published status file.
func StatusFilePath() string {
	return statusFilePath
}

// LogFilePath returns the path to the rotating log file.
func LogFilePath() string {
	return logFilePath
}

// InitializePaths resolves all application file paths against the xdg
// base directories. BLOX_ENV isolates the files used by development
// and test runs.
func InitializePaths() {
	bloxEnv := strings.TrimSpace(os.Getenv("BLOX_ENV"))
	if bloxEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", bloxEnv)
		dbFileName = fmt.Sprintf("blox_%s.db", bloxEnv)
		statusFileName = fmt.Sprintf("status_%s.json", bloxEnv)
		logFileName = fmt.Sprintf("blox_%s.log", bloxEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	stateDir, err := xdg.StateFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logFilePath = filepath.Join(stateDir, logFileName)
}
