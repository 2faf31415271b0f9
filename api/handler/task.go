package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasknest/api/transport"
	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/pkg/httpcontext"
	appLogger "github.com/fastygo/tasknest/pkg/logger"
	taskUC "github.com/fastygo/tasknest/usecase/task"
)

type TaskHandler struct {
	baseHandler
	store *taskUC.Store
	loc   *time.Location
}

// NewTaskHandler builds the task handler. loc is used to read date-only due dates.
func NewTaskHandler(store *taskUC.Store, loc *time.Location, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
		loc:         loc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	query := transport.ListTasksQuery{
		Search:   string(ctx.QueryArgs().Peek("search")),
		Category: string(ctx.QueryArgs().Peek("category")),
		Priority: string(ctx.QueryArgs().Peek("priority")),
		Status:   string(ctx.QueryArgs().Peek("status")),
	}
	filter, err := query.ToFilter()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	tasks := h.store.List(stdCtx, filter)
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(tasks, transport.ListMeta{
		Count:    len(tasks),
		Filtered: filter.Active(),
	}))
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, _ := ctx.UserValue("id").(string)

	task, err := h.store.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.CreateTaskRequest
	if !h.decodeJSON(ctx, &req) {
		return
	}
	in, err := req.ToDomain(h.loc)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	created := h.store.Create(stdCtx, in)
	appLogger.WithRequestID(stdCtx, h.logger).Debug("task created", zap.String("task_id", created.ID))
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, _ := ctx.UserValue("id").(string)

	var req transport.UpdateTaskRequest
	if !h.decodeJSON(ctx, &req) {
		return
	}
	patch, err := req.ToDomain(h.loc)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	updated, ok := h.store.Update(stdCtx, id, patch)
	if !ok {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, _ := ctx.UserValue("id").(string)

	deleted := h.store.Delete(stdCtx, id)
	h.logger.Debug("task delete handled", append(httpcontext.Fields(stdCtx),
		zap.String("task_id", id),
		zap.Bool("deleted", deleted),
	)...)
	h.respondSuccess(ctx, http.StatusOK, transport.DeleteResult{ID: id, Deleted: deleted})
}

// @Summary List overdue tasks
// @Tags tasks
// @Router /api/v1/overdue [get]
func (h *TaskHandler) GetOverdue(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks := h.store.Overdue(stdCtx)
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(tasks, transport.ListMeta{Count: len(tasks)}))
}

// @Summary Task analytics
// @Tags analytics
// @Router /api/v1/analytics [get]
func (h *TaskHandler) GetAnalytics(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.store.Analytics(stdCtx))
}
