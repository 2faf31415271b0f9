package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ErrCodeInternal},
		{"sentinel", ErrTaskNotFound, ErrCodeNotFound},
		{"wrapped by fmt", fmt.Errorf("load: %w", ErrStorageUnavailable), ErrCodeUnavailable},
		{"outer code wins", WrapError(ErrCodeInvalid, "bad input", ErrTaskNotFound), ErrCodeInvalid},
		{"empty code", &Error{Message: "unclassified"}, ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeOf(tc.err))
		})
	}
}

func TestWrapErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(ErrCodeUnavailable, "save failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save failed: disk full", err.Error())
	assert.True(t, IsDomainError(err, ErrCodeUnavailable))
	assert.False(t, IsDomainError(err, ErrCodeNotFound))
	assert.False(t, IsDomainError(nil, ErrCodeInternal))
}
