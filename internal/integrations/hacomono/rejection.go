package hacomono

import (
	"errors"
)

// DefaultRejectionKind вид ошибки для кодов, которых нет в таблице
const DefaultRejectionKind = "upstream_validation"

// RejectionClassifier сопоставляет коды ошибок платформы видам ошибок бронирования
type RejectionClassifier struct {
	kinds map[string]string
}

// NewRejectionClassifier таблица код -> вид из конфигурации
func NewRejectionClassifier(kinds map[string]string) *RejectionClassifier {
	table := make(map[string]string, len(kinds))
	for code, kind := range kinds {
		table[code] = kind
	}
	return &RejectionClassifier{kinds: table}
}

// Classify возвращает вид ошибки и сообщение платформы без изменений
// ok=false, если ошибка не является отказом платформы
func (r *RejectionClassifier) Classify(err error) (kind string, message string, ok bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !errors.Is(err, ErrRejected) {
		return "", "", false
	}

	if k, found := r.kinds[apiErr.Code]; found {
		return k, apiErr.Message, true
	}
	return DefaultRejectionKind, apiErr.Message, true
}
