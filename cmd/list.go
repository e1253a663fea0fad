package cmd

import (
	"github.com/spf13/cobra"

	"github.com/karimwahba/groclist/internal/calc"
	"github.com/karimwahba/groclist/internal/output"
)

// List command flags.
var (
	listFlagPending bool
	listFlagBought  bool
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "Show the grocery list",
	Long: `Show the grocery list, newest items first, with a cost summary.

Examples:
  groclist list
  groclist list --pending
  groclist list --bought
  groclist list -f json`,
	RunE: runList,
}

// totalCmd shows the cost summary only.
var totalCmd = &cobra.Command{
	Use:     "total",
	Aliases: []string{"cost"},
	Short:   "Show the list cost summary",
	RunE:    runTotal,
}

func init() {
	listCmd.Flags().BoolVar(&listFlagPending, "pending", false,
		"Only show items not yet bought")
	listCmd.Flags().BoolVar(&listFlagBought, "bought", false,
		"Only show bought items")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(totalCmd)
}

// runList handles the list command.
func runList(cmd *cobra.Command, args []string) error {
	items, err := ctx.ItemRepo.List()
	if err != nil {
		return err
	}

	if listFlagPending || listFlagBought {
		filtered := items[:0]
		for _, item := range items {
			if item.IsBought == listFlagBought {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintItems(items)
	}

	ctx.CLIFormatter().PrintItemList(items)
	return nil
}

// runTotal handles the total command.
func runTotal(cmd *cobra.Command, args []string) error {
	items, err := ctx.ItemRepo.List()
	if err != nil {
		return err
	}

	total := calc.TotalCost(items)
	remaining := calc.RemainingCost(items)
	bought := calc.BoughtCount(items)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"total_count":    len(items),
			"bought_count":   bought,
			"total_cost":     total,
			"remaining_cost": remaining,
		})
	}

	ctx.Formatter.Printf("Total:     %s\n", output.FormatMoney(total))
	ctx.Formatter.Printf("Remaining: %s\n", output.FormatMoney(remaining))
	ctx.Formatter.Printf("Bought:    %d of %d items\n", bought, len(items))
	return nil
}
