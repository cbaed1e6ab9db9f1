package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Статусы ячейки календаря
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
	StatusError       = "error" // некорректные входные данные для ячейки
)

// Request модель запроса календаря доступности
type Request struct {
	RoomID    int64     // ID комнаты
	ProgramID int64     // ID программы
	From      time.Time // Дата начала (без времени, в часовом поясе студии)
	To        time.Time // Дата конца включительно
}

// Response модель ответа: ячейки по дням
type Response struct {
	RoomID             int64
	ProgramID          int64
	GranularityMinutes int
	DurationMinutes    int
	Days               []Day
}

// Day ячейки одной даты
type Day struct {
	Date  time.Time
	Slots []Slot
}

// Slot модель ячейки
type Slot struct {
	StartTime types.TimeString    // Время начала ячейки (например, "10:00")
	StartAt   time.Time           // Начало ячейки
	Status    string              // available / unavailable / error
	Reason    availability.Reason // Пусто для error
	Message   string              // Текст для пользователя
}
