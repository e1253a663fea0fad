package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/karimwahba/groclist/internal/errors"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/runtime"
	"github.com/karimwahba/groclist/internal/storage"
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a single item",
	Long: `Show a single item by its id.

Examples:
  groclist show 3
  groclist show 3 -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.ValidArgsFunction = completeItemArgs
	rootCmd.AddCommand(showCmd)
}

// runShow handles the show command.
func runShow(cmd *cobra.Command, args []string) error {
	item, err := getItemByArg(args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintItem("ok", item)
	}

	ctx.CLIFormatter().PrintItem(item)
	return nil
}

// parseItemID parses a positional item id argument.
func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewUserErrorWithField("id", arg,
			"item id must be a positive number",
			"Run 'groclist list' to see item ids")
	}
	return id, nil
}

// getItemByArg loads an item by its positional id argument.
func getItemByArg(arg string) (*model.Item, error) {
	id, err := parseItemID(arg)
	if err != nil {
		return nil, err
	}

	item, err := ctx.ItemRepo.Get(id)
	if err != nil {
		if storage.IsErrKeyNotFound(err) {
			return nil, fmt.Errorf("item %d: %w", id, apperrors.ErrItemNotFound)
		}
		return nil, err
	}
	return item, nil
}

// completeItemArgs provides completion for item ids.
func completeItemArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Initialize context for completion
	if ctx == nil {
		opts := runtime.DefaultOptions()
		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer ctx.Close()
	}

	items, err := ctx.ItemRepo.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var suggestions []string
	for _, item := range items {
		id := strconv.FormatInt(item.ID, 10)
		if strings.HasPrefix(id, toComplete) {
			suggestions = append(suggestions, fmt.Sprintf("%s\t%s", id, item.Name))
		}
	}

	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
