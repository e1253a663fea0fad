package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karimwahba/groclist/internal/validate"
)

// Update command flags.
var (
	updateFlagName     string
	updateFlagQuantity int
	updateFlagPrice    float64
)

// updateCmd represents the update command.
var updateCmd = &cobra.Command{
	Use:     "update ID",
	Aliases: []string{"edit"},
	Short:   "Update an item's name, quantity, or price",
	Long: `Update an existing item. Only the fields given as flags change.

Examples:
  groclist update 3 --name "Whole milk"
  groclist update 3 --quantity 2
  groclist update 3 --price 4.99 --quantity 1`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateFlagName, "name", "n", "",
		"New item name")
	updateCmd.Flags().IntVarP(&updateFlagQuantity, "quantity", "q", 0,
		"New quantity")
	updateCmd.Flags().Float64VarP(&updateFlagPrice, "price", "p", -1,
		"New unit price")

	updateCmd.ValidArgsFunction = completeItemArgs
	rootCmd.AddCommand(updateCmd)
}

// runUpdate handles the update command.
func runUpdate(cmd *cobra.Command, args []string) error {
	item, err := getItemByArg(args[0])
	if err != nil {
		return err
	}

	changed := false

	if cmd.Flags().Changed("name") {
		name := validate.SanitizeItemName(updateFlagName)
		if err := validate.ItemName(name); err != nil {
			return err
		}
		item.Name = name
		changed = true
	}

	if cmd.Flags().Changed("quantity") {
		if err := validate.Quantity(updateFlagQuantity); err != nil {
			return err
		}
		item.Quantity = updateFlagQuantity
		changed = true
	}

	if cmd.Flags().Changed("price") {
		if err := validate.Price(updateFlagPrice); err != nil {
			return err
		}
		item.Price = updateFlagPrice
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to update: pass --name, --quantity, or --price")
	}

	if err := ctx.ItemRepo.Update(item); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintItem("updated", item)
	}

	ctx.CLIFormatter().PrintItemUpdated(item)
	return nil
}
