package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/blox/internal/block"
	"github.com/ayoisaiah/blox/internal/models"
	"github.com/ayoisaiah/blox/internal/ui"
)

const (
	noBlocksMsg = "No blocks recorded for the specified day"
)

// printBlocksTable prints a block table to the command-line.
func printBlocksTable(w io.Writer, blocks []models.Block, dayStartHour int) {
	tableBody := make([][]string, len(blocks))

	for i := range blocks {
		b := blocks[i]

		var statusText string

		switch b.Status {
		case models.StatusCompleted:
			statusText = ui.Green("completed")
		case models.StatusStopped:
			statusText = ui.Red("stopped")
		default:
			statusText = ui.Cyan("active")
		}

		var startText string

		date, err := time.ParseInLocation(time.DateOnly, b.Date, time.Local)
		if err == nil {
			startAt, _ := block.SlotBounds(date, b.Index)
			startText = startAt.Format("03:04 PM")
		}

		row := []string{
			fmt.Sprintf("%d", block.DisplayNumber(b.Index, dayStartHour)),
			startText,
			b.Category,
			b.Label,
			fmt.Sprintf("%.0f%%", b.Progress*100),
			formatSeconds(b.UsedSeconds),
			statusText,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "START", "CATEGORY", "LABEL", "FILLED", "RECORDED", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listBlocks prints out a table of recorded blocks.
func listBlocks(blocks []models.Block, dayStartHour int) error {
	if len(blocks) == 0 {
		pterm.Info.Println(noBlocksMsg)
		return nil
	}

	printBlocksTable(os.Stdout, blocks, dayStartHour)

	return nil
}
