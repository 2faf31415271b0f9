package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	m.Register("slots", func(context.Context) error {
		order = append(order, "slots")
		return nil
	})
	m.RegisterCloser("resync", closerFunc(func() error {
		order = append(order, "resync")
		return nil
	}))
	m.Register("http", func(context.Context) error {
		order = append(order, "http")
		return nil
	})

	assert.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http", "resync", "slots"}, order)
}

func TestShutdownJoinsErrors(t *testing.T) {
	m := New(0, nil)
	boom := errors.New("boom")
	ran := false
	m.Register("first", func(context.Context) error {
		ran = true
		return nil
	})
	m.Register("second", func(context.Context) error { return boom })
	m.Register("nil", nil)

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran, "later failures must not stop earlier hooks")
}

func TestShutdownRunsHooksOnce(t *testing.T) {
	m := New(time.Second, nil)
	calls := 0
	m.Register("bolt", func(context.Context) error {
		calls++
		return nil
	})

	assert.NoError(t, m.Shutdown(context.Background()))
	assert.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 1, calls)
}
