package booking

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки разбора слота.
var (
	ErrBadDate = errors.New("unrecognized date format")
	ErrBadTime = errors.New("unrecognized time format")
)

// Канонические форматы хранения.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// Легаси-формат даты из старых данных и ручного ввода.
	legacyDateLayout = "02.01.2006"
)

// Slot — нормализованная пара дата+время брони.
type Slot struct {
	Date string // "2006-01-02"
	Time string // "15:04"
}

// ParseSlot разбирает пользовательский ввод даты и времени.
// Дата принимается в каноническом "2006-01-02" и легаси "02.01.2006"
// форматах; наружу всегда выходит канонический вид.
func ParseSlot(rawDate, rawTime string) (Slot, error) {
	d, err := parseDate(rawDate)
	if err != nil {
		return Slot{}, err
	}

	t, err := time.Parse(TimeLayout, rawTime)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrBadTime, rawTime)
	}

	return Slot{
		Date: d.Format(DateLayout),
		Time: t.Format(TimeLayout),
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, raw); err == nil {
		return d, nil
	}
	if d, err := time.Parse(legacyDateLayout, raw); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, raw)
}

// SlotTime собирает дату и время в time.Time в поясе loc.
// Оба формата даты допустимы — в базе могут лежать старые записи.
func SlotTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	d, err := parseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, timeOfDay)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// Отображаемый статус брони. Вычисляется на чтении, не хранится.
type DisplayStatus string

const (
	DisplayCanceled DisplayStatus = "canceled"
	DisplayToday    DisplayStatus = "today"
	DisplayPast     DisplayStatus = "past"
	DisplayUpcoming DisplayStatus = "upcoming"
)

// DeriveDisplayStatus — чистая функция (status, date, time, now) → статус
// для интерфейса:
//   - отменённая бронь остаётся "canceled" независимо от даты;
//   - совпадение календарного дня с now — "today";
//   - момент строго раньше now — "past";
//   - иначе — "upcoming".
//
// Нечитаемый слот считается "past": такая запись не должна ронять выдачу.
func DeriveDisplayStatus(status, date, timeOfDay string, now time.Time) DisplayStatus {
	if status == "canceled" {
		return DisplayCanceled
	}

	dt, err := SlotTime(date, timeOfDay, now.Location())
	if err != nil {
		return DisplayPast
	}

	if sameDay(dt, now) {
		return DisplayToday
	}
	if dt.Before(now) {
		return DisplayPast
	}
	return DisplayUpcoming
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var ruWeekdays = map[time.Weekday]string{
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
	time.Sunday:    "Воскресенье",
}

// FormatSlotForUser форматирует слот брони в человекочитаемую строку
// для писем и телеграм-уведомлений: "Пятница, 02.01.2026, 10:00".
func FormatSlotForUser(date, timeOfDay string, loc *time.Location) string {
	dt, err := SlotTime(date, timeOfDay, loc)
	if err != nil {
		// Показываем как есть, чтобы не терять уведомление.
		return fmt.Sprintf("%s %s", date, timeOfDay)
	}

	return fmt.Sprintf("%s, %s, %s", ruWeekdays[dt.Weekday()], dt.Format(legacyDateLayout), dt.Format(TimeLayout))
}
