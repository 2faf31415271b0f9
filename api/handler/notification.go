package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasknest/api/transport"
	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/internal/events"
	"github.com/fastygo/tasknest/pkg/httpcontext"
)

type NotificationHandler struct {
	baseHandler
	queue *events.Queue
}

func NewNotificationHandler(queue *events.Queue, adapter *httpcontext.Adapter, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		queue:       queue,
	}
}

// @Summary Drain pending notifications
// @Description With ?wait=<duration> an empty queue is held open until a
// @Description notification arrives, the wait elapses or the request times out.
// @Tags notifications
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) Drain(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if raw := ctx.QueryArgs().Peek("wait"); len(raw) > 0 {
		wait, err := time.ParseDuration(string(raw))
		if err != nil || wait < 0 {
			h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "wait must be a non-negative duration such as 5s"))
			return
		}
		h.await(stdCtx, wait)
	}

	items := h.queue.Drain()
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(items, transport.DrainMeta{
		Count:   len(items),
		Dropped: h.queue.Dropped(),
	}))
}

// await blocks until the queue is non-empty, wait elapses or ctx ends.
func (h *NotificationHandler) await(ctx context.Context, wait time.Duration) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for h.queue.Len() == 0 {
		select {
		case <-h.queue.Ready():
		case <-timer.C:
			return
		case <-ctx.Done():
			return
		}
	}
}
