package handle_webhook

// Scope область инвалидации
type Scope string

const (
	ScopeRooms   Scope = "rooms"
	ScopeAll     Scope = "all"
	ScopeIgnored Scope = "ignored"
)

// Request событие платформы
type Request struct {
	Event   string  // например reservation.created, shift.updated
	RoomIDs []int64 // комнаты, затронутые событием
}

// Response результат обработки события
type Response struct {
	Event       string
	Scope       Scope
	Invalidated int // удалено снапшотов
}
