package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/notify"
	"github.com/karimwahba/groclist/internal/runtime"
	"github.com/karimwahba/groclist/internal/validate"
)

// Channel command flags.
var (
	channelAddFlagType     string
	channelRemoveFlagForce bool
	channelTestFlagAll     bool
)

// channelCmd represents the channel command.
var channelCmd = &cobra.Command{
	Use:     "channel [command]",
	Aliases: []string{"ch", "channels"},
	Short:   "Configure alert channels",
	Long: `Configure channels for reminder delivery. A channel is a webhook
endpoint: Discord, Slack, Teams, or any URL accepting JSON.

Reminders are only delivered when at least one enabled channel exists;
without one they fire silently.

Examples:
  groclist channel add phone https://discord.com/api/webhooks/...
  groclist channel add work https://hooks.slack.com/services/...
  groclist channel list
  groclist channel test phone
  groclist channel disable work
  groclist channel remove phone`,
	RunE: runChannelList,
}

// channelAddCmd adds a new channel.
var channelAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add an alert channel",
	Long: `Add a channel for receiving reminders.

The channel type is auto-detected from the URL:
  - Discord: discord.com/api/webhooks/...
  - Slack:   hooks.slack.com/services/...
  - Teams:   *.webhook.office.com/...
  - Generic: Any other HTTPS URL

Examples:
  groclist channel add phone https://discord.com/api/webhooks/123/abc
  groclist channel add home https://example.com/hook --type generic`,
	Args: cobra.ExactArgs(2),
	RunE: runChannelAdd,
}

// channelListCmd lists all channels.
var channelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alert channels",
	RunE:  runChannelList,
}

// channelTestCmd tests a channel.
var channelTestCmd = &cobra.Command{
	Use:   "test [NAME]",
	Short: "Send a test notification to a channel",
	Long: `Send a test notification to verify channel configuration.

Examples:
  groclist channel test phone
  groclist channel test --all`,
	RunE: runChannelTest,
}

// channelRemoveCmd removes a channel.
var channelRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a channel",
	Args:    cobra.ExactArgs(1),
	RunE:    runChannelRemove,
}

// channelEnableCmd enables a channel.
var channelEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Enable a channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runChannelEnable,
}

// channelDisableCmd disables a channel.
var channelDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Disable a channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runChannelDisable,
}

func init() {
	channelAddCmd.Flags().StringVarP(&channelAddFlagType, "type", "t", "",
		"Channel type: discord, slack, teams, generic (auto-detected from URL if not specified)")

	channelRemoveCmd.Flags().BoolVar(&channelRemoveFlagForce, "force", false,
		"Skip confirmation")

	channelTestCmd.Flags().BoolVarP(&channelTestFlagAll, "all", "a", false,
		"Test all enabled channels")

	// Dynamic completion for channel names
	channelTestCmd.ValidArgsFunction = completeChannelArgs
	channelRemoveCmd.ValidArgsFunction = completeChannelArgs
	channelEnableCmd.ValidArgsFunction = completeChannelArgs
	channelDisableCmd.ValidArgsFunction = completeChannelArgs

	channelCmd.AddCommand(channelAddCmd)
	channelCmd.AddCommand(channelListCmd)
	channelCmd.AddCommand(channelTestCmd)
	channelCmd.AddCommand(channelRemoveCmd)
	channelCmd.AddCommand(channelEnableCmd)
	channelCmd.AddCommand(channelDisableCmd)

	rootCmd.AddCommand(channelCmd)
}

// completeChannelArgs provides completion for channel names.
func completeChannelArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
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

	channels, err := ctx.ChannelRepo.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, ch := range channels {
		if strings.HasPrefix(ch.Name, toComplete) {
			names = append(names, ch.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// runChannelAdd handles the channel add command.
func runChannelAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	channelURL := args[1]

	if !model.IsValidChannelName(name) {
		return fmt.Errorf("invalid channel name: must be alphanumeric with dash/underscore, max 50 chars")
	}

	if err := validate.URL(channelURL); err != nil {
		return err
	}

	exists, err := ctx.ChannelRepo.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("channel %q already exists", name)
	}

	channelType := channelAddFlagType
	if channelType == "" {
		channelType = model.DetectChannelType(channelURL)
	}
	if !model.IsValidChannelType(channelType) {
		return fmt.Errorf("invalid channel type: must be discord, slack, teams, or generic")
	}

	channel := model.NewChannel(name, channelType, channelURL)
	if err := ctx.ChannelRepo.Create(channel); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"name":       channel.Name,
			"type":       channel.Type,
			"url":        channel.MaskedURL(),
			"enabled":    channel.Enabled,
			"created_at": channel.CreatedAt,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Added channel %s", name))
	ctx.Formatter.Printf("  Type: %s\n", channel.Type)
	ctx.Formatter.Printf("  URL: %s\n", channel.MaskedURL())
	ctx.Formatter.Println("")
	ctx.Formatter.Printf("Test with: groclist channel test %s\n", name)

	return nil
}

// runChannelList handles the channel list command.
func runChannelList(cmd *cobra.Command, args []string) error {
	channels, err := ctx.ChannelRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintChannels(channels)
	}

	ctx.CLIFormatter().PrintChannelList(channels)
	return nil
}

// runChannelTest handles the channel test command.
func runChannelTest(cmd *cobra.Command, args []string) error {
	dispatcher := notify.NewDispatcher(ctx.ChannelRepo)
	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if channelTestFlagAll {
		channels, err := ctx.ChannelRepo.ListEnabled()
		if err != nil {
			return err
		}
		if len(channels) == 0 {
			return fmt.Errorf("no enabled channels to test")
		}

		var results []notify.DispatchResult
		for _, ch := range channels {
			results = append(results, dispatcher.TestChannel(c, ch.Name))
		}

		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]interface{}{
				"results": results,
			})
		}

		for _, result := range results {
			if result.Success {
				ctx.Formatter.Printf("✓ %s: Success (%dms)\n", result.ChannelName, result.Duration.Milliseconds())
			} else {
				ctx.Formatter.Printf("✗ %s: Failed - %s\n", result.ChannelName, result.Error)
			}
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("channel name required (or use --all)")
	}

	name := args[0]
	result := dispatcher.TestChannel(c, name)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"channel":     name,
			"success":     result.Success,
			"status_code": result.StatusCode,
			"duration_ms": result.Duration.Milliseconds(),
			"error":       errorString(result.Error),
		})
	}

	if result.Success {
		ctx.CLIFormatter().Success(fmt.Sprintf("Message delivered in %dms", result.Duration.Milliseconds()))
	} else {
		ctx.CLIFormatter().Error(fmt.Sprintf("Failed: %s", result.Error))
		ctx.Formatter.Println("The channel URL may be invalid or the service may be unavailable.")
	}

	return nil
}

// runChannelRemove handles the channel remove command.
func runChannelRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	exists, err := ctx.ChannelRepo.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("channel %q not found", name)
	}

	// Confirmation (skip if --force)
	if !channelRemoveFlagForce && !ctx.IsJSON() {
		ctx.Formatter.Printf("Remove channel %q? [y/N] ", name)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			ctx.Formatter.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.ChannelRepo.Delete(name); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":  "removed",
			"channel": name,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Removed channel %s", name))
	return nil
}

// runChannelEnable handles the channel enable command.
func runChannelEnable(cmd *cobra.Command, args []string) error {
	return setChannelEnabled(args[0], true)
}

// runChannelDisable handles the channel disable command.
func runChannelDisable(cmd *cobra.Command, args []string) error {
	return setChannelEnabled(args[0], false)
}

// setChannelEnabled flips the enabled state of a channel.
func setChannelEnabled(name string, enabled bool) error {
	channel, err := ctx.ChannelRepo.Get(name)
	if err != nil {
		return fmt.Errorf("channel %q not found", name)
	}

	channel.Enabled = enabled
	if err := ctx.ChannelRepo.Update(channel); err != nil {
		return err
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":  status,
			"channel": name,
		})
	}

	if enabled {
		ctx.Formatter.Printf("Enabled channel: %s\n", name)
	} else {
		ctx.Formatter.Printf("Disabled channel: %s\n", name)
	}
	return nil
}

// errorString returns the error message or empty string if nil.
func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
