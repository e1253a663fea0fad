package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd marks an item as bought.
var checkCmd = &cobra.Command{
	Use:     "check ID",
	Aliases: []string{"bought", "buy"},
	Short:   "Mark an item as bought",
	Long: `Mark an item as bought. Bought items stay on the list, shown struck
through, and drop out of the remaining cost.

Examples:
  groclist check 3`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// uncheckCmd marks an item as not bought.
var uncheckCmd = &cobra.Command{
	Use:     "uncheck ID",
	Aliases: []string{"unbuy"},
	Short:   "Mark an item as not bought",
	Args:    cobra.ExactArgs(1),
	RunE:    runUncheck,
}

func init() {
	checkCmd.ValidArgsFunction = completeItemArgs
	uncheckCmd.ValidArgsFunction = completeItemArgs

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(uncheckCmd)
}

// runCheck handles the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	return setBought(args[0], true)
}

// runUncheck handles the uncheck command.
func runUncheck(cmd *cobra.Command, args []string) error {
	return setBought(args[0], false)
}

// setBought flips the bought state of an item.
func setBought(arg string, state bool) error {
	item, err := getItemByArg(arg)
	if err != nil {
		return err
	}

	if item.IsBought == state {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintItem("unchanged", item)
		}
		if state {
			ctx.Formatter.Printf("%s is already bought\n", item.Name)
		} else {
			ctx.Formatter.Printf("%s is not bought\n", item.Name)
		}
		return nil
	}

	if err := ctx.ItemRepo.SetBought(item.ID, state); err != nil {
		return err
	}
	item.IsBought = state

	if ctx.IsJSON() {
		status := "unchecked"
		if state {
			status = "checked"
		}
		return ctx.JSONFormatter().PrintItem(status, item)
	}

	if state {
		ctx.CLIFormatter().Success(fmt.Sprintf("Bought %s", item.Name))
	} else {
		ctx.CLIFormatter().Success(fmt.Sprintf("%s is back on the list", item.Name))
	}
	return nil
}
