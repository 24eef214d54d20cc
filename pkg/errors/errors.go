package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
	ErrConflict   = fmt.Errorf("операция над записью уже выполняется")
	ErrInternal   = fmt.Errorf("внутренняя ошибка сервера")
)

// RemoteReadError - не удалось прочитать данные из удаленного хранилища.
type RemoteReadError struct {
	Collection string
	Op         string
	Err        error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("не удалось прочитать %s (%s): %v", e.Collection, e.Op, e.Err)
}

func (e *RemoteReadError) Unwrap() error { return e.Err }

// RemoteNotFoundError - в коллекции нет записи с таким id.
type RemoteNotFoundError struct {
	Collection string
	ID         string
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("%s: запись %q не найдена", e.Collection, e.ID)
}

func (e *RemoteNotFoundError) Is(target error) bool { return target == ErrNotFound }

// RemoteWriteError - удаленное хранилище отклонило вставку, обновление или удаление.
type RemoteWriteError struct {
	Collection string
	Op         string
	Err        error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("не удалось выполнить %s в %s: %v", e.Op, e.Collection, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// ValidationError - ошибка на стороне вызывающего, до обращения к хранилищу.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrBadRequest }

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func NewReadError(collection, op string, err error) error {
	return &RemoteReadError{Collection: collection, Op: op, Err: err}
}

func NewWriteError(collection, op string, err error) error {
	return &RemoteWriteError{Collection: collection, Op: op, Err: err}
}

func NewNotFoundError(collection, id string) error {
	return &RemoteNotFoundError{Collection: collection, ID: id}
}

// HttpError - ошибка, готовая к отдаче клиенту.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, nil)
}

// HTTPStatus сопоставляет таксономию ошибок с HTTP-кодами.
func HTTPStatus(err error) int {
	var (
		httpErr    *HttpError
		notFound   *RemoteNotFoundError
		validation *ValidationError
		readErr    *RemoteReadError
		writeErr   *RemoteWriteError
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &notFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.As(err, &writeErr):
		return http.StatusBadGateway
	case errors.As(err, &readErr):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
