package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/internal/config"
)

func TestNewPoolRejectsBadURL(t *testing.T) {
	_, err := NewPool(context.Background(), config.DatabaseConfig{URL: "postgres://%zz"}, time.Second, nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestCloseNilPool(t *testing.T) {
	assert.NotPanics(t, func() { Close(nil, nil) })
}
