package task

import (
	"time"

	"github.com/fastygo/tasknest/domain"
)

// WeekDays is the length of the rolling progress window ending today.
const WeekDays = 7

const dayLayout = "2006-01-02"

// Analyze derives aggregate statistics from tasks as of now. Day boundaries
// for the weekly window are taken in loc.
func Analyze(tasks []domain.Task, now time.Time, loc *time.Location) domain.TaskAnalytics {
	if loc == nil {
		loc = time.Local
	}

	out := domain.TaskAnalytics{
		TotalTasks:           len(tasks),
		CategoryDistribution: make(map[domain.Category]int),
		PriorityDistribution: make(map[domain.Priority]int),
		WeeklyProgress:       weekWindow(now, loc),
	}

	index := make(map[string]int, WeekDays)
	for i, day := range out.WeeklyProgress {
		index[day.Day] = i
	}

	for i := range tasks {
		task := &tasks[i]
		switch task.Status {
		case domain.StatusCompleted:
			out.CompletedTasks++
		case domain.StatusPending:
			out.PendingTasks++
		}
		if task.IsOverdue(now) {
			out.OverdueTasksCount++
		}
		out.CategoryDistribution[task.Category]++
		out.PriorityDistribution[task.Priority]++

		if i, ok := index[task.CreatedAt.In(loc).Format(dayLayout)]; ok {
			out.WeeklyProgress[i].Created++
		}
		if task.CompletedAt != nil {
			if i, ok := index[task.CompletedAt.In(loc).Format(dayLayout)]; ok {
				out.WeeklyProgress[i].Completed++
			}
		}
	}

	if out.TotalTasks > 0 {
		out.CompletionRate = float64(out.CompletedTasks) / float64(out.TotalTasks) * 100
	}
	return out
}

// weekWindow returns the six days before today and today, oldest first.
func weekWindow(now time.Time, loc *time.Location) []domain.DayProgress {
	local := now.In(loc)
	y, m, d := local.Date()

	days := make([]domain.DayProgress, WeekDays)
	for i := range days {
		date := time.Date(y, m, d-(WeekDays-1-i), 0, 0, 0, 0, loc)
		days[i] = domain.DayProgress{
			Date: date,
			Day:  date.Format(dayLayout),
		}
	}
	return days
}

// Overdue filters tasks that are past due and not completed, preserving order.
func Overdue(tasks []domain.Task, now time.Time) []domain.Task {
	out := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.IsOverdue(now) {
			out = append(out, task.Clone())
		}
	}
	return out
}
