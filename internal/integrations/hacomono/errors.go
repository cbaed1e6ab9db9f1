package hacomono

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized токен недействителен и не удалось его обновить
	ErrUnauthorized = errors.New("hacomono client: unauthorized")

	// ErrRateLimited превышен лимит запросов после повторной попытки
	ErrRateLimited = errors.New("hacomono client: rate limited")

	// ErrNotFound объект не найден на платформе
	ErrNotFound = errors.New("hacomono client: not found")

	// ErrRejected платформа отклонила запрос (валидация, конфликт бронирования)
	ErrRejected = errors.New("hacomono client: request rejected")

	// ErrUnavailable платформа недоступна (5xx, сетевые ошибки)
	ErrUnavailable = errors.New("hacomono client: upstream unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе платформы
	ErrInvalidResponse = errors.New("hacomono client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("hacomono client: internal error")
)

// APIError ответ платформы с кодом ошибки; Message передается пользователю без изменений
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%v: status %d: %s: %s", e.kind, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
