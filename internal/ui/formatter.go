package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/notexe/reminderd/internal/reminder"
)

var (
	// One style per lifecycle state
	PendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	CompletedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")) // Soft green

	OverdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	CancelledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Medium gray
			Strikethrough(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dim gray

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple
)

const dueLayout = "2006-01-02 15:04"

// Formatter renders reminders, messages and prompts for the terminal.
type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

// FormatStatus renders a status tag padded to a fixed width so list
// columns stay aligned. Padding happens before styling, because ANSI
// escapes would break printf width counting.
func (f *Formatter) FormatStatus(status reminder.Status) string {
	padded := fmt.Sprintf("%-9s", status)
	if !f.colored {
		return padded
	}

	switch status {
	case reminder.StatusPending:
		return PendingStyle.Render(padded)
	case reminder.StatusCompleted:
		return CompletedStyle.Render(padded)
	case reminder.StatusOverdue:
		return OverdueStyle.Render(padded)
	case reminder.StatusCancelled:
		return CancelledStyle.Render(padded)
	default:
		return padded
	}
}

// FormatReminderLine renders one list row.
func (f *Formatter) FormatReminderLine(r *reminder.Reminder, now time.Time) string {
	id := fmt.Sprintf("%4d", r.ID)
	due := r.DueAt.Local().Format(dueLayout)

	relative := ""
	if r.Status == reminder.StatusPending || r.Status == reminder.StatusOverdue {
		relative = " (" + formatRelativeDue(now, r.DueAt) + ")"
	}

	if f.colored {
		return fmt.Sprintf("%s  %s  %s  %s%s",
			DimStyle.Render(id),
			f.FormatStatus(r.Status),
			due,
			r.Title,
			DimStyle.Render(relative))
	}
	return fmt.Sprintf("%s  %s  %s  %s%s", id, f.FormatStatus(r.Status), due, r.Title, relative)
}

// FormatReminderList renders a header plus one line per reminder.
func (f *Formatter) FormatReminderList(reminders []reminder.Reminder) string {
	if len(reminders) == 0 {
		return f.FormatInfo("No reminders found.")
	}

	header := fmt.Sprintf("%4s  %-9s  %-16s  %s", "ID", "Status", "Due", "Title")
	if f.colored {
		header = HeaderStyle.Render(header)
	}

	now := time.Now()
	lines := []string{header}
	for i := range reminders {
		lines = append(lines, f.FormatReminderLine(&reminders[i], now))
	}
	return strings.Join(lines, "\n")
}

// FormatReminderDetail renders the full view of one reminder. The
// description is rendered as markdown in colored mode, since snooze
// audit notes and user text read better wrapped.
func (f *Formatter) FormatReminderDetail(r *reminder.Reminder) string {
	now := time.Now()
	due := r.DueAt.Local().Format(dueLayout) + " (" + formatRelativeDue(now, r.DueAt) + ")"

	label := func(s string) string {
		if f.colored {
			return AccentStyle.Render(s)
		}
		return s
	}

	title := fmt.Sprintf("Reminder %d", r.ID)
	if f.colored {
		title = HeaderStyle.Render(title)
	}

	lines := []string{
		title,
		fmt.Sprintf("  %s %s", label("Title: "), r.Title),
		fmt.Sprintf("  %s %s", label("Status:"), strings.TrimSpace(f.FormatStatus(r.Status))),
		fmt.Sprintf("  %s %s", label("Due:   "), due),
	}

	if r.Description != "" {
		description := r.Description
		if f.colored {
			description = RenderMarkdown(description)
		}
		lines = append(lines, "", description)
	}

	return strings.Join(lines, "\n")
}

// formatRelativeDue renders the distance to a due time, rounded to the
// minute, as "in 2h05m", "30m ago" or "due now".
func formatRelativeDue(now, due time.Time) string {
	d := due.Sub(now).Round(time.Minute)

	past := d < 0
	if past {
		d = -d
	}

	var span string
	switch {
	case d < time.Minute:
		return "due now"
	case d < time.Hour:
		span = fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		span = fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		days := int(d.Hours()) / 24
		span = fmt.Sprintf("%dd%02dh", days, int(d.Hours())%24)
	}

	if past {
		return span + " ago"
	}
	return "in " + span
}

func (f *Formatter) FormatWelcome(storePath string, interval time.Duration) string {
	if f.colored {
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

		subtitleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		labelStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

		valueStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

		borderStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

		// Build welcome box
		topBorder := borderStyle.Render("╭─────────────────────────────────────────╮")
		bottomBorder := borderStyle.Render("╰─────────────────────────────────────────╯")
		sideBorder := borderStyle.Render("│")

		title := titleStyle.Render("Reminderd")
		storeLine := labelStyle.Render("Store: ") + valueStyle.Render(storePath)
		sweepLine := labelStyle.Render("Check: ") + valueStyle.Render("every "+interval.String())
		helpLine := subtitleStyle.Render("Type help for commands")

		// Pad lines to fit box
		padLine := func(content string, width int) string {
			contentLen := lipgloss.Width(content)
			if contentLen < width {
				return content + strings.Repeat(" ", width-contentLen)
			}
			return content
		}

		boxWidth := 39
		lines := []string{
			"",
			topBorder,
			sideBorder + " " + padLine(title, boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine(storeLine, boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine(sweepLine, boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine("", boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine(helpLine, boxWidth) + " " + sideBorder,
			bottomBorder,
			"",
		}

		return strings.Join(lines, "\n")
	}

	// Plain text fallback
	lines := []string{
		"",
		"Reminderd",
		fmt.Sprintf("Store: %s", storePath),
		fmt.Sprintf("Check: every %s", interval),
		"Type help for commands",
		"",
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatHelp(snoozePresets []int) string {
	if len(snoozePresets) == 0 {
		snoozePresets = []int{15}
	}
	presets := make([]string, len(snoozePresets))
	for i, m := range snoozePresets {
		presets[i] = fmt.Sprintf("%d", m)
	}
	presetHint := strings.Join(presets, ", ")

	if f.colored {
		headerStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

		cmdStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

		descStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

		sectionStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")).
			Bold(true)

		dimStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		formatCmd := func(cmd, desc string) string {
			return "  " + cmdStyle.Render(fmt.Sprintf("%-22s", cmd)) + " " + descStyle.Render(desc)
		}

		lines := []string{
			"",
			headerStyle.Render("Commands"),
			"",
			sectionStyle.Render("Reminders"),
			formatCmd("add", "Add a reminder (asks for title, due, description)"),
			formatCmd("list [filter] [order]", "List reminders (all/pending/completed/overdue/cancelled, asc/desc)"),
			formatCmd("show <id>", "Show one reminder in full"),
			formatCmd("edit <id>", "Edit title, due time and description"),
			formatCmd("done <id>", "Mark a reminder completed"),
			formatCmd("cancel <id>", "Cancel a reminder"),
			formatCmd("rm <id>", "Delete a reminder"),
			"",
			sectionStyle.Render("Notifications"),
			formatCmd("snooze [minutes]", "Postpone the active notification ("+presetHint+")"),
			formatCmd("dismiss", "Discard the active notification"),
			formatCmd("active", "Show the active notification"),
			formatCmd("check", "Run a reminder sweep now"),
			"",
			sectionStyle.Render("General"),
			formatCmd("help", "Show this help"),
			formatCmd("quit", "Exit"),
			"",
			headerStyle.Render("Tips"),
			dimStyle.Render("  Ctrl+C or Ctrl+D to exit"),
			dimStyle.Render("  Due times: 2025-01-15 09:00 or RFC 3339"),
			dimStyle.Render("  snooze with no argument uses "+presets[0]+" minutes"),
			"",
		}

		return strings.Join(lines, "\n")
	}

	// Plain text fallback
	lines := []string{
		"",
		"Commands:",
		"  add                    - Add a reminder",
		"  list [filter] [order]  - List reminders",
		"  show <id>              - Show one reminder",
		"  edit <id>              - Edit a reminder",
		"  done <id>              - Mark completed",
		"  cancel <id>            - Cancel",
		"  rm <id>                - Delete",
		"  snooze [minutes]       - Postpone active notification (" + presetHint + ")",
		"  dismiss                - Discard active notification",
		"  active                 - Show active notification",
		"  check                  - Run a sweep now",
		"  help                   - Show help",
		"  quit                   - Exit",
		"",
	}

	return strings.Join(lines, "\n")
}

// FormatPrompt returns the styled input prompt.
func (f *Formatter) FormatPrompt() string {
	if f.colored {
		promptStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
		arrowStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)
		return promptStyle.Render("remind") + arrowStyle.Render(" > ")
	}
	return "remind > "
}

// FormatFieldPrompt returns the prompt for one field of the add/edit
// dialogs.
func (f *Formatter) FormatFieldPrompt(field string) string {
	if f.colored {
		return DimStyle.Render("  "+field) + AccentStyle.Render(" > ")
	}
	return "  " + field + " > "
}
