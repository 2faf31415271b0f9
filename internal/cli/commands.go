package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastygo/tasknest/api/transport"
	"github.com/fastygo/tasknest/domain"
	taskUC "github.com/fastygo/tasknest/usecase/task"
)

func (c *CLI) addCmd() *cobra.Command {
	var req transport.CreateTaskRequest
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `  tasknest add "Write report" --category work --priority high --due 2024-06-20
  tasknest add "Stretch" -c health -p low --status in-progress`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = strings.Join(args, " ")
			in, err := req.ToDomain(c.session.loc)
			if err != nil {
				return err
			}
			out, err := c.command(cmd.Context(), taskUC.CommandCreate, in)
			if err != nil {
				return err
			}
			return c.printTask(out.(domain.Task))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&req.Description, "description", "d", "", "longer description")
	f.StringVarP(&req.Category, "category", "c", string(domain.CategoryOther), "work, personal, health, learning or other")
	f.StringVarP(&req.Priority, "priority", "p", string(domain.PriorityMedium), "low, medium, high or urgent")
	f.StringVarP(&req.Status, "status", "s", "", "pending, in-progress or completed (default pending)")
	f.StringVar(&req.DueDate, "due", "", "due date as YYYY-MM-DD or RFC3339")
	return cmd
}

func (c *CLI) listCmd() *cobra.Command {
	var q transport.ListTasksQuery
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := q.ToFilter()
			if err != nil {
				return err
			}
			var params interface{}
			if filter.Active() {
				params = filter
			}
			out, err := c.query(cmd.Context(), taskUC.QueryList, params)
			if err != nil {
				return err
			}
			return c.printTasks(out.([]domain.Task), "No tasks found.")
		},
	}
	f := cmd.Flags()
	f.StringVarP(&q.Search, "search", "q", "", "match title or description, case-insensitive")
	f.StringVarP(&q.Category, "category", "c", "", "only this category")
	f.StringVarP(&q.Priority, "priority", "p", "", "only this priority")
	f.StringVarP(&q.Status, "status", "s", "", "only this status")
	return cmd
}

func (c *CLI) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.query(cmd.Context(), taskUC.QueryGet, args[0])
			if err != nil {
				return err
			}
			return c.printTask(out.(domain.Task))
		},
	}
}

func (c *CLI) updateCmd() *cobra.Command {
	var title, description, category, priority, status, due string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Long:  `Only the flags you pass are changed. Pass --due "" to clear the due date.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req transport.UpdateTaskRequest
			f := cmd.Flags()
			if f.Changed("title") {
				req.Title = &title
			}
			if f.Changed("description") {
				req.Description = &description
			}
			if f.Changed("category") {
				req.Category = &category
			}
			if f.Changed("priority") {
				req.Priority = &priority
			}
			if f.Changed("status") {
				req.Status = &status
			}
			if f.Changed("due") {
				req.DueDate = &due
			}
			patch, err := req.ToDomain(c.session.loc)
			if err != nil {
				return err
			}
			return c.update(cmd, args[0], patch)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&title, "title", "t", "", "new title")
	f.StringVarP(&description, "description", "d", "", "new description")
	f.StringVarP(&category, "category", "c", "", "new category")
	f.StringVarP(&priority, "priority", "p", "", "new priority")
	f.StringVarP(&status, "status", "s", "", "new status")
	f.StringVar(&due, "due", "", "new due date, empty to clear")
	return cmd
}

func (c *CLI) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task as completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := domain.StatusCompleted
			return c.update(cmd, args[0], domain.TaskPatch{Status: &completed})
		},
	}
}

func (c *CLI) update(cmd *cobra.Command, id string, patch domain.TaskPatch) error {
	out, err := c.command(cmd.Context(), taskUC.CommandUpdate, taskUC.UpdateCommand{ID: id, Patch: patch})
	if err != nil {
		return err
	}
	return c.printTask(out.(domain.Task))
}

func (c *CLI) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.command(cmd.Context(), taskUC.CommandDelete, args[0])
			if err != nil {
				return err
			}
			if deleted, _ := out.(bool); !deleted {
				return domain.ErrTaskNotFound
			}
			return c.printDeleted(args[0])
		},
	}
}

func (c *CLI) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Aliases: []string{"analytics"},
		Short:   "Show completion analytics and the last seven days",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.query(cmd.Context(), taskUC.QueryAnalytics, nil)
			if err != nil {
				return err
			}
			return c.printAnalytics(out.(domain.TaskAnalytics))
		},
	}
}

func (c *CLI) overdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List tasks past their due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.query(cmd.Context(), taskUC.QueryOverdue, nil)
			if err != nil {
				return err
			}
			return c.printTasks(out.([]domain.Task), "Nothing overdue.")
		},
	}
}
