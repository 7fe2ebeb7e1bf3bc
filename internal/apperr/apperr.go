package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error ошибка уровня API: HTTP-статус + машинный код + сообщение для клиента
type Error struct {
	Status int
	Code   string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation некорректный или неполный ввод
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation", Msg: msg}
}

// NotFound сущность не существует
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Msg: msg}
}

// Forbidden пользователь аутентифицирован, но не имеет прав на сущность
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Msg: msg}
}

// InvalidState сущность существует, но её состояние не допускает переход
func InvalidState(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "invalid_state", Msg: msg}
}

// Internal ошибка хранилища или другая внутренняя
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal", Msg: "internal error", Err: err}
}

// From приводит произвольную ошибку к *Error; всё неизвестное считается внутренним
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

// IsCode проверяет код ошибки (для тестов и ветвлений в сервисах)
func IsCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
