package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karimwahba/groclist/internal/parser"
	"github.com/karimwahba/groclist/internal/scheduler"
)

// remindCmd represents the remind command.
var remindCmd = &cobra.Command{
	Use:     "remind [ITEM_ID] [WHEN...]",
	Aliases: []string{"r", "rem"},
	Short:   "Schedule a reminder for an item",
	Long: `Schedule a one-shot reminder for a grocery item. When called without
arguments, lists pending reminders.

Reminders fire through the background daemon. Start it with
'groclist daemon start' and add at least one channel with
'groclist channel add' so alerts have somewhere to go.

Time formats:
  - Presets: 1h, tomorrow, weekend
  - Relative: +5m, +2h, +1d, +1w
  - Natural language: "friday 5pm", "tomorrow 2pm"
  - Date/time: "2026-09-15 14:00"

Examples:
  groclist remind 3 1h
  groclist remind 3 tomorrow
  groclist remind 3 +45m
  groclist remind 3 friday 5pm`,
	RunE: runRemindCreate,
}

// remindListCmd lists pending reminders.
var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending reminders",
	RunE:  runRemindList,
}

// remindCancelCmd cancels pending reminders for an item.
var remindCancelCmd = &cobra.Command{
	Use:     "cancel ITEM_ID",
	Aliases: []string{"rm", "delete"},
	Short:   "Cancel pending reminders for an item",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemindCancel,
}

func init() {
	remindCancelCmd.ValidArgsFunction = completeItemArgs

	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindCancelCmd)

	rootCmd.AddCommand(remindCmd)
}

// runRemindCreate handles scheduling a new reminder.
func runRemindCreate(cmd *cobra.Command, args []string) error {
	// If no args, show list
	if len(args) == 0 {
		return runRemindList(cmd, args)
	}

	if len(args) < 2 {
		return fmt.Errorf("usage: groclist remind ITEM_ID WHEN")
	}

	id, err := parseItemID(args[0])
	if err != nil {
		return err
	}

	whenResult := parser.ParseWhenArgs(args[1:])
	if whenResult.Error != nil {
		return fmt.Errorf("could not parse time: %w", whenResult.Error)
	}

	planner := scheduler.NewPlanner(ctx.ItemRepo, ctx.ReminderRepo, ctx.ChannelRepo)
	result, err := planner.Schedule(id, whenResult.Time)
	if err != nil {
		return err
	}

	task := result.Task

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReminder("scheduled", task)
	}

	fireDesc := fmt.Sprintf("%s (%s)",
		parser.FormatFireAt(task.FireAt),
		parser.FormatTimeUntil(task.FireAt))
	ctx.CLIFormatter().PrintReminderScheduled(task, fireDesc)

	if result.NoChannels {
		ctx.CLIFormatter().Warning("No enabled channels: the reminder will fire but nothing will be delivered.")
		ctx.Formatter.Println("Add one with: groclist channel add <name> <url>")
	}

	return nil
}

// runRemindList handles listing pending reminders.
func runRemindList(cmd *cobra.Command, args []string) error {
	tasks, err := ctx.ReminderRepo.ListPending()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReminders(tasks)
	}

	ctx.CLIFormatter().PrintReminderList(tasks)
	return nil
}

// runRemindCancel handles cancelling reminders for an item.
func runRemindCancel(cmd *cobra.Command, args []string) error {
	id, err := parseItemID(args[0])
	if err != nil {
		return err
	}

	planner := scheduler.NewPlanner(ctx.ItemRepo, ctx.ReminderRepo, ctx.ChannelRepo)
	cancelled, err := planner.CancelForItem(id)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":    "cancelled",
			"item_id":   id,
			"cancelled": cancelled,
		})
	}

	if cancelled == 0 {
		ctx.Formatter.Printf("No pending reminders for item %d\n", id)
		return nil
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Cancelled %d reminder(s) for item %d", cancelled, id))
	return nil
}
