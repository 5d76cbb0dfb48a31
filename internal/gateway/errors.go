package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mmeshcher/venueops/internal/model"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

// Коды ошибок в ответах API.
const (
	CodeValidation        = "validation_failed"
	CodeNotFound          = "not_found"
	CodeVersionConflict   = "version_conflict"
	CodeInvalidTransition = "invalid_transition"
	CodeRoomOccupied      = "room_occupied"
	CodeInternal          = "internal_error"
)

var errorTable = []struct {
	err    error
	code   string
	status int
}{
	{err: model.ErrRoomOccupied, code: CodeRoomOccupied, status: http.StatusConflict},
	{err: model.ErrVersionConflict, code: CodeVersionConflict, status: http.StatusConflict},
	{err: model.ErrInvalidTransition, code: CodeInvalidTransition, status: http.StatusConflict},
	{err: model.ErrNotFound, code: CodeNotFound, status: http.StatusNotFound},
	{err: model.ErrValidation, code: CodeValidation, status: http.StatusBadRequest},
}

// Classify возвращает HTTP-статус и код ошибки для ответа API.
func Classify(err error) (int, string) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// StatusError неожиданный ответ сервера без известного кода ошибки.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status: %d", e.Status)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.Status, e.Message)
}

// RemoteError доменная ошибка, полученная от сервера.
type RemoteError struct {
	Code    string
	Message string
	err     error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.err.Error()
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.err
}

// decodeError восстанавливает доменную ошибку по ответу сервера.
func decodeError(status int, body *ErrorResponse) error {
	var resp ErrorResponse
	if body != nil {
		resp = *body
	}
	for _, e := range errorTable {
		if resp.Code == e.code {
			return &RemoteError{Code: resp.Code, Message: resp.Message, err: e.err}
		}
	}
	switch status {
	case http.StatusNotFound:
		return &RemoteError{Code: CodeNotFound, Message: resp.Message, err: model.ErrNotFound}
	case http.StatusBadRequest:
		return &RemoteError{Code: CodeValidation, Message: resp.Message, err: model.ErrValidation}
	}
	return &StatusError{Status: status, Message: resp.Message}
}
