package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p *fakePinger) Ping(context.Context) error { return p.err }

type fakeDirty bool

func (d fakeDirty) Dirty() bool { return bool(d) }

func TestMonitorRefresh(t *testing.T) {
	pinger := &fakePinger{}
	m := New("bolt", pinger, fakeDirty(true), time.Minute, time.Second, nil)

	status := m.Refresh()
	assert.True(t, status.Storage)
	assert.True(t, status.Dirty)
	assert.Equal(t, "bolt", status.Backend)
	assert.True(t, m.IsOnline())

	pinger.err = errors.New("connection refused")
	status = m.Refresh()
	assert.False(t, status.Storage)
	assert.Equal(t, "connection refused", status.LastError)
	assert.False(t, m.IsOnline())
}

func TestMonitorWithoutPingerIsOnline(t *testing.T) {
	m := New("file", nil, nil, 0, 0, nil)
	assert.True(t, m.Refresh().Storage)

	m.Start()
	m.Stop()
	m.Stop()
}
