package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasknest/api/transport"
	"github.com/fastygo/tasknest/internal/infrastructure/monitor"
	"github.com/fastygo/tasknest/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	_, cancel := h.requestContext(ctx)
	defer cancel()

	status := h.monitor.GetStatus()
	payload := transport.HealthReport{
		Timestamp: time.Now().UTC(),
		Storage: transport.StorageHealth{
			Backend:   status.Backend,
			Online:    status.Storage,
			Dirty:     status.Dirty,
			Error:     status.LastError,
			LastCheck: status.LastCheck,
		},
	}

	// a dirty store still serves from memory, so it only degrades, never fails
	if status.Storage && !status.Dirty {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "storage unhealthy", payload))
}
