package handle_webhook

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном событии
	ErrInvalidInput = errors.New("handle_webhook: invalid input data")

	// ErrInvalidationFailed возвращается, когда кэш не удалось очистить
	ErrInvalidationFailed = errors.New("handle_webhook: snapshot invalidation failed")
)
