package types

import (
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате HH:MM
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString создает TimeString из часов и минут переданного времени
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return TimeString{}, fmt.Errorf("%w: %d minutes out of day range", ErrInvalidTimeString, minutes)
	}
	return TimeString{minutes: minutes, valid: true}, nil
}

// NewTimeStringFromString парсит строку формата HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes сдвигает время на n минут, не выходя за пределы суток
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + n)
}

// IsBefore строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// IsZero true, если время не было задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return fmt.Errorf("%w: empty value", ErrInvalidTimeString)
	}
	if t.minutes < 0 || t.minutes >= 24*60 {
		return fmt.Errorf("%w: %d minutes out of day range", ErrInvalidTimeString, t.minutes)
	}
	return nil
}

// On возвращает момент времени на указанную дату в её часовом поясе
func (t TimeString) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t.minutes) * time.Minute)
}

// String возвращает время в формате HH:MM
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}
