package domain

import "errors"

var (
	// ErrInvertedInterval возвращается для интервала с End <= Start
	ErrInvertedInterval = errors.New("domain: inverted interval")

	// ErrUnknownSelectionKind возвращается для неизвестного варианта правила выбора
	ErrUnknownSelectionKind = errors.New("domain: unknown selection kind")

	// ErrInvalidProgram возвращается при отсутствии обязательной конфигурации программы
	ErrInvalidProgram = errors.New("domain: invalid program configuration")

	// ErrInvalidTerm возвращается для терма с некорректными границами
	ErrInvalidTerm = errors.New("domain: invalid term")

	// ErrExtensionTooLong возвращается, когда запрошенное продление превышает максимум программы
	ErrExtensionTooLong = errors.New("domain: extension exceeds program maximum")
)
