package api

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
		{"nil", nil, ErrCodeOK},
		{"sentinel", ErrPoolExhausted, ErrCodePoolExhausted},
		{"with context", ErrForeignSlot.WithContext("slot", 3), ErrCodeForeignSlot},
		{"wrapped", fmt.Errorf("pool %q: %w", "a", ErrInvalidConfiguration), ErrCodeInvalidConfiguration},
		{"cause kept", Wrap(ErrAllocationFailure, errors.New("oom")), ErrCodeAllocationFailure},
		{"foreign error", errors.New("boom"), ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeOf(tc.err))
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := Wrap(ErrInternal, errors.New("munmap failed")).WithContext("op", "release")
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrAllocationFailure)
	assert.Equal(t, "internal", CodeOf(err).String())

	assert.ErrorIs(t, ErrDoubleReturn, ErrInvalidReturn)
	assert.ErrorIs(t, ErrForeignSlot, ErrInvalidReturn)
	assert.NotErrorIs(t, ErrPoolExhausted, ErrInvalidReturn)
}
