package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "supplier-hub/pkg/errors"
)

func respond(t *testing.T, err error) (int, HTTPResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, ErrorResponse(c, err, zap.NewNop()))

	var body HTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", apperrors.NewNotFoundError("suppliers", "x"), http.StatusNotFound},
		{"validation", apperrors.NewValidationError("name", "обязательное поле"), http.StatusBadRequest},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"write", apperrors.NewWriteError("suppliers", "insert", errors.New("dup")), http.StatusBadGateway},
		{"read", apperrors.NewReadError("suppliers", "listAll", errors.New("down")), http.StatusServiceUnavailable},
		{"http", apperrors.NewHttpError(http.StatusRequestEntityTooLarge, "слишком большой файл", nil, nil), http.StatusRequestEntityTooLarge},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := respond(t, tt.err)
			assert.Equal(t, tt.code, code)
			assert.False(t, body.Status)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestErrorResponse_HidesInternalDetails(t *testing.T) {
	_, body := respond(t, errors.New("pq: password authentication failed"))
	assert.Equal(t, "Внутренняя ошибка сервера", body.Message)
}

func TestErrorResponse_ValidatorErrors(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
	}
	err := validator.New().Struct(input{})

	code, body := respond(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body.Message, "Name")
}

func TestSuccessResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SuccessResponse(c, map[string]int{"n": 1}, "ok", http.StatusCreated))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":true,"body":{"n":1},"message":"ok"}`, rec.Body.String())
}
