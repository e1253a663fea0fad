package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/karimwahba/groclist/internal/calc"
	"github.com/karimwahba/groclist/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleBought = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorMuted)

	styleItemName = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// ItemName formats an item name, striking out bought items.
func (c *CLIFormatter) ItemName(item *model.Item) string {
	if !c.IsColorEnabled() {
		if item.IsBought {
			return item.Name + " (bought)"
		}
		return item.Name
	}
	if item.IsBought {
		return styleBought.Render(item.Name)
	}
	return styleItemName.Render(item.Name)
}

// Money formats a monetary amount with emphasis.
func (c *CLIFormatter) Money(amount float64) string {
	text := FormatMoney(amount)
	if c.IsColorEnabled() {
		return styleBold.Render(text)
	}
	return text
}

// PrintItemAdded prints a confirmation after adding an item.
func (c *CLIFormatter) PrintItemAdded(item *model.Item) {
	c.Success(fmt.Sprintf("Added %s (#%d)", item.Name, item.ID))
	c.Printf("  Quantity: %d\n", item.Quantity)
	c.Printf("  Price: %s each, %s total\n", FormatMoney(item.Price), c.Money(item.LineTotal()))
}

// PrintItemUpdated prints a confirmation after updating an item.
func (c *CLIFormatter) PrintItemUpdated(item *model.Item) {
	c.Success(fmt.Sprintf("Updated %s (#%d)", item.Name, item.ID))
	c.Printf("  Quantity: %d, Price: %s each\n", item.Quantity, FormatMoney(item.Price))
}

// PrintItem prints a single item in detail.
func (c *CLIFormatter) PrintItem(item *model.Item) {
	c.Title(fmt.Sprintf("#%d %s", item.ID, item.Name))
	c.Printf("  Quantity: %d\n", item.Quantity)
	c.Printf("  Price: %s each\n", FormatMoney(item.Price))
	c.Printf("  Line total: %s\n", c.Money(item.LineTotal()))
	if item.IsBought {
		c.Printf("  Status: bought\n")
	} else {
		c.Printf("  Status: to buy\n")
	}
	c.Printf("  Added: %s\n", FormatTimeShort(item.CreatedAt))
}

// PrintItemList prints the grocery list with totals.
func (c *CLIFormatter) PrintItemList(items []*model.Item) {
	if len(items) == 0 {
		c.Muted("Your grocery list is empty.")
		c.Muted("Use 'groclist add <name>' to add an item.")
		return
	}

	rows := make([]TableRow, 0, len(items))
	for _, item := range items {
		status := " "
		if item.IsBought {
			status = "x"
		}
		rows = append(rows, TableRow{Columns: []string{
			fmt.Sprintf("%d", item.ID),
			"[" + status + "]",
			c.ItemName(item),
			fmt.Sprintf("%d", item.Quantity),
			FormatMoney(item.Price),
			FormatMoney(item.LineTotal()),
		}})
	}
	c.PrintTable([]string{"ID", "", "Item", "Qty", "Price", "Total"}, rows)

	c.Println()
	c.Printf("Total: %s", c.Money(calc.TotalCost(items)))
	remaining := calc.RemainingCost(items)
	if remaining != calc.TotalCost(items) {
		c.Printf("  (remaining: %s)", FormatMoney(remaining))
	}
	c.Println()
	c.Muted(fmt.Sprintf("%d of %d items bought", calc.BoughtCount(items), len(items)))
}

// PrintReminderScheduled prints a confirmation after scheduling a reminder.
func (c *CLIFormatter) PrintReminderScheduled(task *model.ReminderTask, fireDesc string) {
	c.Success(fmt.Sprintf("Reminder set for %s", task.ItemName))
	c.Printf("  Fires: %s (%s)\n", FormatTimeShort(task.FireAt), fireDesc)
	c.Printf("  ID: %s\n", task.ShortID())
}

// PrintReminderList prints scheduled reminders.
func (c *CLIFormatter) PrintReminderList(tasks []*model.ReminderTask) {
	if len(tasks) == 0 {
		c.Muted("No reminders scheduled.")
		c.Muted("Use 'groclist remind <id> <when>' to set one.")
		return
	}

	rows := make([]TableRow, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, TableRow{Columns: []string{
			task.ShortID(),
			task.ItemName,
			FormatTimeShort(task.FireAt),
			task.Status,
		}})
	}
	c.PrintTable([]string{"ID", "Item", "Fires", "Status"}, rows)
}

// PrintChannelList prints configured alert channels.
func (c *CLIFormatter) PrintChannelList(channels []*model.Channel) {
	if len(channels) == 0 {
		c.Muted("No alert channels configured.")
		c.Muted("Use 'groclist channel add <name> <url>' to add one.")
		c.Muted("Reminders will not be delivered until a channel is enabled.")
		return
	}

	rows := make([]TableRow, 0, len(channels))
	for _, ch := range channels {
		state := "enabled"
		if !ch.Enabled {
			state = "disabled"
		}
		rows = append(rows, TableRow{Columns: []string{
			ch.Name,
			ch.Type,
			state,
			ch.MaskedURL(),
		}})
	}
	c.PrintTable([]string{"Name", "Type", "State", "URL"}, rows)
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	if c.IsColorEnabled() {
		c.Println(styleBold.Render(strings.TrimRight(headerLine.String(), " ")))
	} else {
		c.Println(strings.TrimRight(headerLine.String(), " "))
	}

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
