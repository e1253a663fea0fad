package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karimwahba/groclist/internal/calc"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/output"
	"github.com/karimwahba/groclist/internal/parser"
	"github.com/karimwahba/groclist/internal/storage"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// BoardModel is the bubbletea model for the grocery board.
type BoardModel struct {
	// Data
	items     []*model.Item
	reminders []*model.ReminderTask

	// Repositories
	itemRepo     *storage.ItemRepo
	reminderRepo *storage.ReminderRepo

	// UI state
	cursor     int
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// BoardConfig holds configuration for the board.
type BoardConfig struct {
	ItemRepo        *storage.ItemRepo
	ReminderRepo    *storage.ReminderRepo
	RefreshInterval time.Duration
}

// NewBoardModel creates a new board model.
func NewBoardModel(config BoardConfig) *BoardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}

	return &BoardModel{
		itemRepo:        config.ItemRepo,
		reminderRepo:    config.ReminderRepo,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *BoardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case " ", "b":
		// Toggle bought state on the selected item
		if item := m.selectedItem(); item != nil {
			if err := m.itemRepo.SetBought(item.ID, !item.IsBought); err != nil {
				m.err = err
			} else {
				if item.IsBought {
					m.setMessage(fmt.Sprintf("%s unmarked", item.Name), 2*time.Second)
				} else {
					m.setMessage(fmt.Sprintf("%s bought", item.Name), 2*time.Second)
				}
				m.loadData()
			}
		}
		return m, nil

	case "d", "x":
		// Delete the selected item
		if item := m.selectedItem(); item != nil {
			if err := m.itemRepo.Delete(item.ID); err != nil {
				m.err = err
			} else {
				m.setMessage(fmt.Sprintf("%s removed", item.Name), 2*time.Second)
				m.loadData()
			}
		}
		return m, nil

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// selectedItem returns the item under the cursor, or nil.
func (m *BoardModel) selectedItem() *model.Item {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

// View renders the board.
func (m *BoardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		errBox := StyleError.Render(fmt.Sprintf("Error: %v", m.err))
		sections = append(sections, errBox)
	}

	if m.message != "" {
		msgBox := StyleWarning.Render(m.message)
		sections = append(sections, msgBox)
	}

	listComp := NewListComponent(m.items, m.cursor, m.width)
	sections = append(sections, listComp.View())

	summaryComp := NewSummaryComponent(m.items, m.width)
	sections = append(sections, summaryComp.View())

	if len(m.reminders) > 0 {
		remindersComp := NewRemindersComponent(m.reminders, m.width)
		sections = append(sections, remindersComp.View())
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the board header.
func (m *BoardModel) renderHeader() string {
	title := StyleTitle.Render("Groclist Board")
	now := time.Now().Format("Mon Jan 2, 15:04:05")
	timeStr := StyleSubtitle.Render(now)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// loadData loads items and pending reminders from the repositories.
func (m *BoardModel) loadData() {
	items, err := m.itemRepo.List()
	if err != nil {
		m.err = err
		return
	}
	m.items = items

	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	// Reminders are optional, don't fail the board on error
	reminders, err := m.reminderRepo.ListPending()
	if err != nil {
		m.reminders = nil
	} else {
		m.reminders = reminders
	}

	m.err = nil
}

// setMessage sets a temporary message.
func (m *BoardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *BoardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *BoardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// ListComponent displays the grocery items.
type ListComponent struct {
	Items  []*model.Item
	Cursor int
	Width  int
}

// NewListComponent creates a new list component.
func NewListComponent(items []*model.Item, cursor, width int) *ListComponent {
	return &ListComponent{
		Items:  items,
		Cursor: cursor,
		Width:  width,
	}
}

// View renders the list component.
func (lc *ListComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Groceries"))
	content.WriteString("\n")

	if len(lc.Items) == 0 {
		content.WriteString(StyleSubtitle.Render("List is empty. Add items with 'groclist add'."))
	} else {
		for i, item := range lc.Items {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(lc.renderItem(item, i == lc.Cursor))
		}
	}

	box := StyleListBox.Width(lc.Width - 4)
	return box.Render(content.String())
}

func (lc *ListComponent) renderItem(item *model.Item, selected bool) string {
	var sb strings.Builder

	if selected {
		sb.WriteString(StyleCursor.Render("> "))
	} else {
		sb.WriteString("  ")
	}

	if item.IsBought {
		sb.WriteString(StyleSuccess.Render("☑ "))
		sb.WriteString(StyleItemBought.Render(item.Name))
	} else {
		sb.WriteString(StyleSubtitle.Render("☐ "))
		sb.WriteString(StyleItemName.Render(item.Name))
	}

	sb.WriteString(StyleSubtitle.Render(fmt.Sprintf(" ×%d", item.Quantity)))
	sb.WriteString("  ")
	sb.WriteString(StylePrice.Render(output.FormatMoney(item.LineTotal())))

	return sb.String()
}

// SummaryComponent displays cost aggregates for the list.
type SummaryComponent struct {
	Items []*model.Item
	Width int
}

// NewSummaryComponent creates a new summary component.
func NewSummaryComponent(items []*model.Item, width int) *SummaryComponent {
	return &SummaryComponent{
		Items: items,
		Width: width,
	}
}

// View renders the summary component.
func (sc *SummaryComponent) View() string {
	var content strings.Builder

	total := calc.TotalCost(sc.Items)
	remaining := calc.RemainingCost(sc.Items)
	bought := calc.BoughtCount(sc.Items)
	count := len(sc.Items)

	content.WriteString(StyleTitle.Render("Summary"))
	content.WriteString("\n")

	percentage := 0.0
	if count > 0 {
		percentage = float64(bought) / float64(count) * 100
	}

	barWidth := sc.Width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	content.WriteString(ProgressBar(percentage, barWidth))
	content.WriteString("\n")

	progressText := fmt.Sprintf("%d / %d bought (%.0f%%)", bought, count, percentage)
	costText := fmt.Sprintf("Total %s, %s left to spend",
		output.FormatMoney(total), output.FormatMoney(remaining))

	done := count > 0 && bought == count
	if done {
		content.WriteString(StyleSuccess.Render(progressText))
		content.WriteString("\n")
		content.WriteString(StyleSuccess.Render("✓ All bought!"))
	} else {
		content.WriteString(StyleSubtitle.Render(progressText))
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render(costText))
	}

	var box lipgloss.Style
	if done {
		box = StyleSummaryDoneBox.Width(sc.Width - 4)
	} else {
		box = StyleSummaryBox.Width(sc.Width - 4)
	}

	return box.Render(content.String())
}

// RemindersComponent displays pending reminder tasks.
type RemindersComponent struct {
	Reminders []*model.ReminderTask
	Width     int
}

// NewRemindersComponent creates a new reminders component.
func NewRemindersComponent(reminders []*model.ReminderTask, width int) *RemindersComponent {
	return &RemindersComponent{
		Reminders: reminders,
		Width:     width,
	}
}

// View renders the reminders component.
func (rc *RemindersComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Upcoming Reminders"))
	content.WriteString("\n")

	for i, task := range rc.Reminders {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(StyleItemName.Render(task.ItemName))
		content.WriteString("  ")
		content.WriteString(StyleSubtitle.Render(parser.FormatFireAt(task.FireAt)))
	}

	box := StyleRemindersBox.Width(rc.Width - 4)
	return box.Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "navigate"},
		{"space", "toggle bought"},
		{"d", "delete"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

// Run starts the board TUI.
func Run(config BoardConfig) error {
	model := NewBoardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
