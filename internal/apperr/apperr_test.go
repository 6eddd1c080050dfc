package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	t.Run("matches on kind", func(t *testing.T) {
		err := NewNotFound("Project not found")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrConflict))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", NewConflict("taken"))
		assert.True(t, errors.Is(err, ErrConflict))
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFound("x").Status())
	assert.Equal(t, http.StatusForbidden, NewConflict("x").Status())
	assert.Equal(t, http.StatusForbidden, NewForbidden("x").Status())
	assert.False(t, errors.Is(NewForbidden("x"), ErrConflict))
	assert.Equal(t, http.StatusBadRequest, ErrInvalidCredentials.Status())
	assert.Equal(t, http.StatusBadRequest, NewValidation("x", nil).Status())
	assert.Equal(t, http.StatusTooManyRequests, ErrRateLimited.Status())
	assert.Equal(t, http.StatusInternalServerError, NewInternal("x", errors.New("db down")).Status())
}

func TestAs(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("query: %w", NewInternal("could not load", cause))

	e, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, Internal, e.Kind)
	assert.ErrorIs(t, err, cause)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
