package availability

import "slices"

// Reason is the single outcome of evaluating one slot
type Reason string

const (
	ReasonTooSoon             Reason = "too-soon"
	ReasonTooFar              Reason = "too-far"
	ReasonDeadlinePassed      Reason = "deadline-passed"
	ReasonDailyLimitReached   Reason = "daily-limit-reached"
	ReasonHoliday             Reason = "holiday"
	ReasonOutsideHours        Reason = "outside-hours"
	ReasonNoSelectableStaff   Reason = "no-selectable-staff"
	ReasonIntervalBlocked     Reason = "interval-blocked"
	ReasonFullyBooked         Reason = "fully-booked"
	ReasonNoAvailableResource Reason = "no-available-resource"
	ReasonAvailable           Reason = "available"
)

// precedence порядок, в котором причины проверяются; available всегда последняя
var precedence = []Reason{
	ReasonTooSoon,
	ReasonTooFar,
	ReasonDeadlinePassed,
	ReasonDailyLimitReached,
	ReasonHoliday,
	ReasonOutsideHours,
	ReasonNoSelectableStaff,
	ReasonIntervalBlocked,
	ReasonFullyBooked,
	ReasonNoAvailableResource,
	ReasonAvailable,
}

// Precedence returns every reason in evaluation order
func Precedence() []Reason {
	return slices.Clone(precedence)
}

// Rank position of the reason in the precedence order, -1 for unknown values
func (r Reason) Rank() int {
	return slices.Index(precedence, r)
}

// Valid reports membership in the closed set
func (r Reason) Valid() bool {
	return r.Rank() >= 0
}

// IsAvailable true only for ReasonAvailable
func (r Reason) IsAvailable() bool {
	return r == ReasonAvailable
}

// messages пользовательские сообщения, общие для календаря и ошибок бронирования
var messages = map[Reason]string{
	ReasonTooSoon:             "直前のため予約できません",
	ReasonTooFar:              "予約受付期間外です",
	ReasonDeadlinePassed:      "予約締切を過ぎています",
	ReasonDailyLimitReached:   "本日の予約上限に達しました",
	ReasonHoliday:             "休業日です",
	ReasonOutsideHours:        "営業時間外です",
	ReasonNoSelectableStaff:   "対応可能なスタッフがいません",
	ReasonIntervalBlocked:     "前後の予約との間隔が確保できません",
	ReasonFullyBooked:         "満席です",
	ReasonNoAvailableResource: "利用可能な設備がありません",
	ReasonAvailable:           "予約可能です",
}

// Message user-facing text for the reason
func (r Reason) Message() string {
	if msg, ok := messages[r]; ok {
		return msg
	}
	return string(r)
}

// BookingErrorKind small set of booking-time error kinds exposed to callers
type BookingErrorKind string

const (
	KindOutOfRangeDatetime  BookingErrorKind = "out_of_range_datetime"
	KindNoStaffAvailable    BookingErrorKind = "no_staff_available"
	KindNoResourceAvailable BookingErrorKind = "no_resource_available"
	KindUpstreamValidation  BookingErrorKind = "upstream_validation"
)

// ParseBookingErrorKind parses a configured kind name
func ParseBookingErrorKind(s string) (BookingErrorKind, bool) {
	k := BookingErrorKind(s)
	switch k {
	case KindOutOfRangeDatetime, KindNoStaffAvailable, KindNoResourceAvailable, KindUpstreamValidation:
		return k, true
	default:
		return "", false
	}
}

// KindForReason maps a non-available reason to the booking error kind
func KindForReason(r Reason) BookingErrorKind {
	switch r {
	case ReasonTooSoon, ReasonTooFar, ReasonDeadlinePassed, ReasonDailyLimitReached,
		ReasonHoliday, ReasonOutsideHours:
		return KindOutOfRangeDatetime
	case ReasonNoSelectableStaff, ReasonIntervalBlocked, ReasonFullyBooked:
		return KindNoStaffAvailable
	case ReasonNoAvailableResource:
		return KindNoResourceAvailable
	default:
		return KindUpstreamValidation
	}
}
