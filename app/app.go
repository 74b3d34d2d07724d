// Package app defines the blox command-line interface.
package app

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/blox/config"
)

const (
	envNoColor     = "NO_COLOR"
	envBloxNoColor = "BLOX_NO_COLOR"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the blox app instance.
func Get() *cli.App {
	bloxApp := &cli.App{
		Name: "blox",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Blox is a command-line time blocking timer. It divides each day into
		72 fixed 20-minute blocks and records how every block is spent,
		splitting time into categorised work and break segments.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:  "list",
				Usage: "List the recorded blocks for a day. Defaults to today",
				Flags: []cli.Flag{
					dateFlag,
					jsonFlag,
					noColorFlag,
				},
				Action: listAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the active block timer",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			categoryFlag,
			labelFlag,
			breakFlag,
			resetFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			dayStartFlag,
			breakNotifyFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return bloxApp
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	config.InitializePaths()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if BLOX_NO_COLOR is set
	if _, exists := os.LookupEnv(envBloxNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
