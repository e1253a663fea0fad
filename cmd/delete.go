package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karimwahba/groclist/internal/scheduler"
)

// Delete command flags.
var deleteFlagForce bool

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove", "del"},
	Short:   "Remove an item from the list",
	Long: `Remove an item from the grocery list. Pending reminders for the item
are cancelled; reminders that already fired are kept as history.

Examples:
  groclist delete 3
  groclist delete 3 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteFlagForce, "force", false,
		"Skip confirmation")

	deleteCmd.ValidArgsFunction = completeItemArgs
	rootCmd.AddCommand(deleteCmd)
}

// runDelete handles the delete command.
func runDelete(cmd *cobra.Command, args []string) error {
	item, err := getItemByArg(args[0])
	if err != nil {
		return err
	}

	// Confirmation (skip if --force)
	if !deleteFlagForce && !ctx.IsJSON() {
		ctx.Formatter.Printf("Remove %q from the list? [y/N] ", item.Name)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			ctx.Formatter.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.ItemRepo.Delete(item.ID); err != nil {
		return err
	}

	// Cancel pending reminders tied to the item
	planner := scheduler.NewPlanner(ctx.ItemRepo, ctx.ReminderRepo, ctx.ChannelRepo)
	cancelled, err := planner.CancelForItem(item.ID)
	if err != nil {
		ctx.Debugf("failed to cancel reminders for item %d: %v", item.ID, err)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":              "deleted",
			"id":                  item.ID,
			"name":                item.Name,
			"cancelled_reminders": cancelled,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Removed %s", item.Name))
	if cancelled > 0 {
		ctx.Formatter.Printf("Cancelled %d pending reminder(s)\n", cancelled)
	}
	return nil
}
