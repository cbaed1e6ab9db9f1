package hacomono

import "encoding/json"

// envelope общий формат ответа Admin API: {"data": {...}}
type envelope struct {
	Data map[string]json.RawMessage `json:"data"`
}

// listPage страница списка: {"list": [...], "total_count": N, "total_page": N}
type listPage[T any] struct {
	List       []T `json:"list"`
	TotalCount int `json:"total_count"`
	TotalPage  int `json:"total_page"`
}

// errorBody тело ошибки платформы
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Errors  []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// StudioRoom комната (予約カテゴリ)
type StudioRoom struct {
	ID                 int64  `json:"id"`
	StudioID           int64  `json:"studio_id"`
	Name               string `json:"name"`
	ReservationType    string `json:"reservation_type"` // CHOICE / FIXED
	GranularityMinutes int    `json:"choice_granularity_minutes"`
}

// SelectableItem элемент списка выбора
type SelectableItem struct {
	InstructorID int64 `json:"instructor_id,omitempty"`
	ResourceID   int64 `json:"resource_id,omitempty"`
}

// SelectableTerm часть услуги со своим списком оборудования
type SelectableTerm struct {
	Name         string           `json:"name"`
	StartMinutes int              `json:"start_minutes"`
	EndMinutes   int              `json:"end_minutes"`
	Items        []SelectableItem `json:"items"`
}

// SelectableDetails правило выбора персонала или оборудования
type SelectableDetails struct {
	Type  string           `json:"type"`
	Items []SelectableItem `json:"items"`
	Terms []SelectableTerm `json:"terms,omitempty"`
}

// Program программа (услуга)
type Program struct {
	ID                    int64             `json:"id"`
	Name                  string            `json:"name"`
	ServiceMinutes        int               `json:"service_minutes"`
	MaxExtensionMinutes   *int              `json:"max_extension_minutes"`
	ReservableToMinutes   int               `json:"reservable_to_minutes"`
	BeforeIntervalMinutes int               `json:"before_interval_minutes"`
	AfterIntervalMinutes  int               `json:"after_interval_minutes"`
	MaxReservationsPerDay *int              `json:"max_reservations_per_day"`
	SelectableInstructors SelectableDetails `json:"selectable_instructor_details"`
	SelectableResources   SelectableDetails `json:"selectable_resource_details"`
}

// ScheduleShift часы работы комнаты на дату
type ScheduleShift struct {
	IsHoliday bool   `json:"is_holiday"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
}

// InstructorShift смена сотрудника
type InstructorShift struct {
	InstructorID int64  `json:"instructor_id"`
	StartAt      string `json:"start_at"`
	EndAt        string `json:"end_at"`
}

// Assignment занятость сотрудника или оборудования бронированием
type Assignment struct {
	EntityID int64  `json:"entity_id"`
	StartAt  string `json:"start_at"`
	EndAt    string `json:"end_at"`
}

// ChoiceSchedule расписание 自由枠 на одну дату
type ChoiceSchedule struct {
	StudioRoomService struct {
		ID       int64 `json:"id"`
		StudioID int64 `json:"studio_id"`
	} `json:"studio_room_service"`
	Date              string            `json:"date"`
	Shift             *ScheduleShift    `json:"shift"`
	InstructorShifts  []InstructorShift `json:"shift_instructor"`
	InstructorAssigns []Assignment      `json:"reservation_assign_instructor"`
	ResourceAssigns   []Assignment      `json:"reservation_assign_resource"`
}

// StudioLesson фиксированное занятие (固定枠), занимает сотрудника
type StudioLesson struct {
	ID           int64  `json:"id"`
	StudioID     int64  `json:"studio_id"`
	ProgramID    int64  `json:"program_id"`
	InstructorID int64  `json:"instructor_id"`
	StartAt      string `json:"start_at"`
	EndAt        string `json:"end_at"`
}

// ShiftSlot ручная блокировка времени (予定ブロック)
type ShiftSlot struct {
	ID         int64  `json:"id"`
	StudioID   int64  `json:"studio_id"`
	EntityType string `json:"entity_type"` // INSTRUCTOR / RESOURCE
	EntityID   int64  `json:"entity_id"`
	StartAt    string `json:"start_at"`
	EndAt      string `json:"end_at"`
}

// Instructor сотрудник с привязкой к студиям
type Instructor struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	StudioIDs []int64 `json:"studio_ids"`
}

// Resource оборудование студии
type Resource struct {
	ID                    int64  `json:"id"`
	StudioID              int64  `json:"studio_id"`
	Name                  string `json:"name"`
	MaxConcurrent         int    `json:"max_cc"`
	MaxReservationsPerDay *int   `json:"max_reservations_per_day"`
}

// Reservation бронирование
type Reservation struct {
	ID        int64  `json:"id"`
	MemberID  int64  `json:"member_id"`
	ProgramID int64  `json:"program_id"`
	Status    string `json:"status"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	CreatedAt string `json:"created_at"`
}

// GuestMember данные гостя для создания участника
type GuestMember struct {
	Name        string `json:"name"`
	NameKana    string `json:"name_kana,omitempty"`
	MailAddress string `json:"mail_address"`
	Tel         string `json:"tel"`
	IsGuest     bool   `json:"is_guest"`
	StudioID    int64  `json:"studio_id"`
	Note        string `json:"note,omitempty"`
}

// Member созданный участник
type Member struct {
	ID int64 `json:"id"`
}

// ResourceBinding оборудование на часть услуги
type ResourceBinding struct {
	ResourceID   int64 `json:"resource_id"`
	StartMinutes int   `json:"start_minutes"`
	EndMinutes   int   `json:"end_minutes"`
}

// ChoiceReservationRequest запрос создания бронирования 自由枠
type ChoiceReservationRequest struct {
	MemberID         int64             `json:"member_id"`
	StudioRoomID     int64             `json:"studio_room_id"`
	ProgramID        int64             `json:"program_id"`
	TicketID         int64             `json:"ticket_id"`
	InstructorIDs    []int64           `json:"instructor_ids"`
	StartAt          string            `json:"start_at"` // yyyy-MM-dd HH:mm:ss.fff
	ExtensionMinutes int               `json:"extension_minutes,omitempty"`
	ResourceIDSet    []ResourceBinding `json:"resource_id_set,omitempty"`
	ReservationNote  string            `json:"reservation_note,omitempty"`
	IsSendMail       bool              `json:"is_send_mail"`
}

type cancelRequest struct {
	IDs []int64 `json:"ids"`
}
