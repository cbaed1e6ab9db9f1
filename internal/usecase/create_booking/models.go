package create_booking

import (
	"time"
)

// SuccessMessage сообщение об успешном бронировании
const SuccessMessage = "予約が完了しました"

// Guest данные гостя
type Guest struct {
	Name     string
	NameKana string // опционально
	Email    string
	Phone    string
	Note     string // опционально
}

// Request модель запроса на создание бронирования
type Request struct {
	RoomID           int64     // ID комнаты
	ProgramID        int64     // ID программы
	StartAt          time.Time // Начало услуги
	ExtensionMinutes int       // Продление (опционально)
	Guest            Guest
}

// Response модель ответа с созданным бронированием
type Response struct {
	ReservationID   int64     // ID бронирования на платформе
	MemberID        int64     // ID гостя на платформе
	AttemptID       string    // ID записи журнала
	StaffID         int64     // Назначенный сотрудник
	ResourceIDs     []int64   // Назначенное оборудование по термам
	StartAt         time.Time // Начало услуги
	DurationMinutes int       // Длительность с продлением
	Message         string
}
