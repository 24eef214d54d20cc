package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("suppliers", "42"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("обертка: %w", NewNotFoundError("suppliers", "42")), http.StatusNotFound},
		{"validation", NewValidationError("supplierId", "обязательное поле"), http.StatusBadRequest},
		{"conflict", fmt.Errorf("update: %w", ErrConflict), http.StatusConflict},
		{"write", NewWriteError("suppliers", "insert", cause), http.StatusBadGateway},
		{"read", NewReadError("suppliers", "select", cause), http.StatusServiceUnavailable},
		{"http", NewHttpError(http.StatusTeapot, "чайник", nil, nil), http.StatusTeapot},
		{"unknown", errors.New("что-то"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestRemoteErrorsUnwrap(t *testing.T) {
	cause := fmt.Errorf("timeout")

	readErr := NewReadError("evaluations", "select", cause)
	assert.ErrorIs(t, readErr, cause)

	writeErr := NewWriteError("evaluations", "delete", cause)
	assert.ErrorIs(t, writeErr, cause)

	assert.ErrorIs(t, NewNotFoundError("evaluations", "1"), ErrNotFound)
	assert.ErrorIs(t, NewValidationError("", "плохо"), ErrBadRequest)
	assert.Equal(t, "плохо", NewValidationError("", "плохо").Error())
}
