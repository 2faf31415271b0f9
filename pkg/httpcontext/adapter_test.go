package httpcontext

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/tasknest/pkg/logger"
)

func newRequestCtx(method, uri string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.Header.SetUserAgent("tasknest-test")

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5000}, nil)
	return ctx
}

func TestAttachGeneratesRequestID(t *testing.T) {
	a := NewAdapter(time.Second)
	rc := newRequestCtx(fasthttp.MethodGet, "/api/v1/tasks")

	stdCtx, cancel := a.Attach(rc)
	defer cancel()

	reqID := appLogger.RequestID(stdCtx)
	require.NotEmpty(t, reqID)
	assert.Equal(t, reqID, string(rc.Response.Header.Peek(HeaderRequestID)))

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

func TestAttachKeepsIncomingRequestID(t *testing.T) {
	a := NewAdapter(0)
	assert.Equal(t, 5*time.Second, a.Timeout())

	rc := newRequestCtx(fasthttp.MethodDelete, "/api/v1/tasks/abc")
	rc.Request.Header.Set(HeaderRequestID, "  req-42 ")

	stdCtx, cancel := a.Attach(rc)
	defer cancel()

	assert.Equal(t, "req-42", appLogger.RequestID(stdCtx))
	assert.Equal(t, "req-42", string(rc.Response.Header.Peek(HeaderRequestID)))
}

func TestFields(t *testing.T) {
	a := NewAdapter(time.Second)
	rc := newRequestCtx(fasthttp.MethodPost, "/api/v1/tasks")
	rc.Request.Header.Set(HeaderRequestID, "req-7")

	stdCtx, cancel := a.Attach(rc)
	defer cancel()

	got := map[string]string{}
	for _, f := range Fields(stdCtx) {
		got[f.Key] = f.String
	}
	assert.Equal(t, "req-7", got["request_id"])
	assert.Equal(t, "POST /api/v1/tasks", got["route"])
	assert.Equal(t, "127.0.0.1:5000", got["remote_addr"])
	assert.Equal(t, "tasknest-test", got["user_agent"])

	assert.Nil(t, Fields(nil))
}
