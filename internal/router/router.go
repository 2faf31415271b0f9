package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/fastygo/tasknest/api/handler"
)

type Handlers struct {
	Task         *apiHandler.TaskHandler
	Notification *apiHandler.NotificationHandler
	Health       *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/tasks", handlers.Task.GetTasks)
	r.POST("/api/v1/tasks", handlers.Task.CreateTask)
	r.GET("/api/v1/tasks/{id}", handlers.Task.GetTask)
	r.PATCH("/api/v1/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/v1/tasks/{id}", handlers.Task.DeleteTask)

	r.GET("/api/v1/overdue", handlers.Task.GetOverdue)
	r.GET("/api/v1/analytics", handlers.Task.GetAnalytics)
	r.GET("/api/v1/notifications", handlers.Notification.Drain)

	return r
}
