package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/karimwahba/groclist/internal/errors"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/validate"
)

// Add command flags.
var (
	addFlagQuantity int
	addFlagPrice    float64
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:     "add NAME [QUANTITY] [PRICE]",
	Aliases: []string{"a", "new"},
	Short:   "Add an item to the grocery list",
	Long: `Add an item to the grocery list.

Quantity defaults to 1 and price to 0 when omitted. Price is the unit
price; the list shows quantity times price per line.

Examples:
  groclist add "Oat milk"
  groclist add Eggs 12 0.25
  groclist add Bread --quantity 2 --price 3.49`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().IntVarP(&addFlagQuantity, "quantity", "q", 0,
		"Quantity (overrides positional argument)")
	addCmd.Flags().Float64VarP(&addFlagPrice, "price", "p", -1,
		"Unit price (overrides positional argument)")

	rootCmd.AddCommand(addCmd)
}

// runAdd handles the add command.
func runAdd(cmd *cobra.Command, args []string) error {
	name := validate.SanitizeItemName(args[0])
	if name == "" {
		return apperrors.ErrNameRequired
	}
	if err := validate.ItemName(name); err != nil {
		return err
	}

	quantity := 1
	if len(args) >= 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], apperrors.ErrInvalidQuantity)
		}
		quantity = q
	}
	if cmd.Flags().Changed("quantity") {
		quantity = addFlagQuantity
	}
	if err := validate.Quantity(quantity); err != nil {
		return err
	}

	price := 0.0
	if len(args) >= 3 {
		p, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", args[2], apperrors.ErrInvalidPrice)
		}
		price = p
	}
	if cmd.Flags().Changed("price") {
		price = addFlagPrice
	}
	if err := validate.Price(price); err != nil {
		return err
	}

	item := model.NewItem(name, quantity, price)
	if err := ctx.ItemRepo.Insert(item); err != nil {
		return err
	}

	ctx.Debugf("inserted item %d with key %s", item.ID, item.Key)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintItem("added", item)
	}

	ctx.CLIFormatter().PrintItemAdded(item)
	return nil
}
