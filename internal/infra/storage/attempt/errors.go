package attempt

import "errors"

var (
	// ErrAttemptNotFound возвращается, когда запись журнала не найдена
	ErrAttemptNotFound = errors.New("attempt.repository: attempt not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("attempt.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("attempt.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("attempt.repository: failed to scan row")

	// ErrInvalidOutcome возвращается при попытке сохранить недопустимый исход
	ErrInvalidOutcome = errors.New("attempt.repository: invalid outcome")
)
