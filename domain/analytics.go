package domain

import "time"

// DayProgress counts activity on one local calendar day.
type DayProgress struct {
	Date      time.Time `json:"-"`
	Day       string    `json:"date"`
	Completed int       `json:"completed"`
	Created   int       `json:"created"`
}

// TaskAnalytics is derived from the task collection on every query and never stored.
type TaskAnalytics struct {
	TotalTasks           int              `json:"totalTasks"`
	CompletedTasks       int              `json:"completedTasks"`
	PendingTasks         int              `json:"pendingTasks"`
	OverdueTasksCount    int              `json:"overdueTasksCount"`
	CompletionRate       float64          `json:"completionRate"`
	CategoryDistribution map[Category]int `json:"categoryDistribution"`
	PriorityDistribution map[Priority]int `json:"priorityDistribution"`
	WeeklyProgress       []DayProgress    `json:"weeklyProgress"`
}

// InProgressTasks is the remainder not counted as completed or pending.
func (a TaskAnalytics) InProgressTasks() int {
	return a.TotalTasks - a.CompletedTasks - a.PendingTasks
}
