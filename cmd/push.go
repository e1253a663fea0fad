package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/karimwahba/groclist/internal/config"
	"github.com/karimwahba/groclist/internal/daemon"
	apperrors "github.com/karimwahba/groclist/internal/errors"
)

// Push command flags.
var pushFlagItem int64

// pushCmd represents the push command.
var pushCmd = &cobra.Command{
	Use:   "push TITLE [BODY...]",
	Short: "Send a push message through the daemon",
	Long: `Send an ad-hoc message to all enabled channels via the running daemon.

The daemon must be running; start it with 'groclist daemon start'.

Examples:
  groclist push "Store closes at 6"
  groclist push "Grab this too" extra batteries --item 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPush,
}

func init() {
	pushCmd.Flags().Int64VarP(&pushFlagItem, "item", "i", 0,
		"Attach an item id so channels render a link to it")

	rootCmd.AddCommand(pushCmd)
}

// runPush handles the push command.
func runPush(cmd *cobra.Command, args []string) error {
	title := args[0]
	body := strings.Join(args[1:], " ")

	msg := daemon.PushMessage{
		Title:  title,
		Body:   body,
		ItemID: pushFlagItem,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	endpoint := fmt.Sprintf("http://%s/push", config.Global.Push.ListenAddr)

	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDaemonNotRunning, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push rejected: %s", resp.Status)
	}

	var result struct {
		Status    string `json:"status"`
		Channels  int    `json:"channels"`
		Delivered int    `json:"delivered"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(result)
	}

	if result.Channels == 0 {
		ctx.CLIFormatter().Warning("Accepted, but no enabled channels to deliver to.")
		return nil
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Delivered to %d of %d channel(s)", result.Delivered, result.Channels))
	return nil
}
