package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fastygo/tasknest/api/transport"
	"github.com/fastygo/tasknest/domain"
)

var (
	colorMuted   = lipgloss.Color("241")
	colorPrimary = lipgloss.Color("205")
	colorSuccess = lipgloss.Color("42")
	colorDanger  = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	priorityColors = map[domain.Priority]lipgloss.Color{
		domain.PriorityLow:    colorMuted,
		domain.PriorityMedium: lipgloss.Color("39"),
		domain.PriorityHigh:   colorWarning,
		domain.PriorityUrgent: colorDanger,
	}
	variantColors = map[domain.NotificationVariant]lipgloss.Color{
		domain.VariantDefault:     colorPrimary,
		domain.VariantSuccess:     colorSuccess,
		domain.VariantDestructive: colorDanger,
	}
)

func (c *CLI) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLI) printTask(task domain.Task) error {
	if c.flags.json {
		return c.printJSON(task)
	}

	lines := []string{
		titleStyle.Render(task.Title),
		mutedStyle.Render("id ") + task.ID,
		mutedStyle.Render("category ") + string(task.Category),
		mutedStyle.Render("priority ") + renderPriority(task.Priority),
		mutedStyle.Render("status ") + string(task.Status),
		mutedStyle.Render("created ") + c.formatTime(task.CreatedAt),
	}
	if task.Description != "" {
		lines = append(lines, mutedStyle.Render("description ")+task.Description)
	}
	if task.DueDate != nil {
		lines = append(lines, mutedStyle.Render("due ")+c.formatDate(*task.DueDate))
	}
	if task.CompletedAt != nil {
		lines = append(lines, mutedStyle.Render("completed ")+c.formatTime(*task.CompletedAt))
	}
	_, err := fmt.Fprintln(c.stdout, strings.Join(lines, "\n"))
	return err
}

func (c *CLI) printTasks(tasks []domain.Task, empty string) error {
	if c.flags.json {
		return c.printJSON(tasks)
	}
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(c.stdout, mutedStyle.Render(empty))
		return err
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		due := ""
		if task.DueDate != nil {
			due = c.formatDate(*task.DueDate)
		}
		rows = append(rows, []string{
			task.ID,
			task.Title,
			string(task.Category),
			string(task.Priority),
			string(task.Status),
			due,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS", "DUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 3 && row >= 0 && row < len(tasks) {
				return cellStyle.Foreground(priorityColors[tasks[row].Priority])
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(c.stdout, t.String())
	return err
}

func (c *CLI) printDeleted(id string) error {
	if c.flags.json {
		return c.printJSON(transport.DeleteResult{ID: id, Deleted: true})
	}
	_, err := fmt.Fprintln(c.stdout, mutedStyle.Render("deleted ")+id)
	return err
}

func (c *CLI) printAnalytics(a domain.TaskAnalytics) error {
	if c.flags.json {
		return c.printJSON(a)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Overview") + "\n")
	fmt.Fprintf(&b, "total %d  completed %d  pending %d  in progress %d  overdue %d\n",
		a.TotalTasks, a.CompletedTasks, a.PendingTasks, a.InProgressTasks(), a.OverdueTasksCount)
	fmt.Fprintf(&b, "completion rate %s%%\n", strconv.FormatFloat(a.CompletionRate, 'f', 1, 64))

	b.WriteString("\n" + titleStyle.Render("By category") + "\n")
	for _, category := range domain.Categories {
		fmt.Fprintf(&b, "%-9s %d\n", category, a.CategoryDistribution[category])
	}

	b.WriteString("\n" + titleStyle.Render("By priority") + "\n")
	for _, priority := range domain.Priorities {
		fmt.Fprintf(&b, "%-9s %d\n", priority, a.PriorityDistribution[priority])
	}

	rows := make([][]string, 0, len(a.WeeklyProgress))
	for _, day := range a.WeeklyProgress {
		rows = append(rows, []string{day.Day, strconv.Itoa(day.Created), strconv.Itoa(day.Completed)})
	}
	week := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("DAY", "CREATED", "COMPLETED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	b.WriteString("\n" + titleStyle.Render("Last 7 days") + "\n")
	b.WriteString(week.String())

	_, err := fmt.Fprintln(c.stdout, b.String())
	return err
}

// printNotifications drains queued notifications to stderr so stdout stays parseable.
func (c *CLI) printNotifications() {
	if c.session == nil {
		return
	}
	for _, n := range c.session.app.Notifications.Drain() {
		style := lipgloss.NewStyle().Bold(true).Foreground(variantColors[n.Variant])
		fmt.Fprintf(c.stderr, "%s %s\n", style.Render(n.Title), n.Message)
	}
}

func (c *CLI) formatTime(t time.Time) string {
	return t.In(c.session.loc).Format(time.DateTime)
}

func (c *CLI) formatDate(t time.Time) string {
	return t.In(c.session.loc).Format(time.DateOnly)
}

func renderPriority(p domain.Priority) string {
	return lipgloss.NewStyle().Foreground(priorityColors[p]).Render(string(p))
}
