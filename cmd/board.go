package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/karimwahba/groclist/internal/tui"
)

// boardCmd represents the board command.
var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"ui", "tui"},
	Short:   "Open the interactive grocery board",
	Long: `Open a full-screen interactive view of the grocery list.

Navigate with the arrow keys, toggle bought with space, delete with 'd',
and quit with 'q'.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

// runBoard handles the board command.
func runBoard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the board needs an interactive terminal; use 'groclist list' instead")
	}

	return tui.Run(tui.BoardConfig{
		ItemRepo:     ctx.ItemRepo,
		ReminderRepo: ctx.ReminderRepo,
	})
}
