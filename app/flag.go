package app

import "github.com/urfave/cli/v2"

var (
	categoryFlag = &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "Assign a category to the work segments of this block (e.g. 'deep-work')",
	}

	labelFlag = &cli.StringFlag{
		Name:    "label",
		Aliases: []string{"l"},
		Usage:   "Attach a free-form label within the category (e.g. 'api refactor')",
	}

	breakFlag = &cli.BoolFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Start the block in break mode instead of work mode",
	}

	resetFlag = &cli.BoolFlag{
		Name:  "reset",
		Usage: "Discard any interrupted session instead of recovering it",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a block ends",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each block",
	}

	dayStartFlag = &cli.IntFlag{
		Name:  "day-start",
		Usage: "Hour of the day (0-23) treated as block 1 for display numbering",
	}

	breakNotifyFlag = &cli.UintFlag{
		Name:  "break-notify",
		Usage: "Remind you to take a break this many minutes into a work block. 0 disables the reminder",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "List blocks for the specified day (e.g. 'yesterday', '2026-08-20')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}
)
