package cancel_booking

// SuccessMessage сообщение об успешной отмене
const SuccessMessage = "予約がキャンセルされました"

// Request модель запроса на отмену бронирования
type Request struct {
	ReservationID int64 // ID бронирования на платформе
}

// Response модель ответа на отмену
type Response struct {
	ReservationID int64
	RoomID        int64  // 0, если бронирование отсутствует в журнале
	AttemptID     string // пусто, если отмена не записана в журнал
	Message       string
}
