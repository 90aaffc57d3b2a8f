package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dentalbot-service/internal/pkg/constvars"
)

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ParseChatDate parses the DD/MM/YYYY format used across the chat flows.
// The result is anchored at UTC midnight so day-range comparisons are stable
// regardless of the server timezone.
func ParseChatDate(input string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(input), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("expected DD/MM/YYYY, got %q", input)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q", parts[0])
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q", parts[1])
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q", parts[2])
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range: %q", input)
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("date does not exist: %q", input)
	}
	return date, nil
}

// FormatDateSpanish renders a date the way the clinic presents it to
// patients, e.g. "martes, 3 de junio de 2025".
func FormatDateSpanish(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[int(t.Weekday())], t.Day(), spanishMonths[int(t.Month())-1], t.Year())
}

func FormatDateShort(t time.Time) string {
	return t.Format("02/01/2006")
}

func FormatTimeHHMM(t time.Time) string {
	return t.Format("15:04")
}

func FormatDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// CombineDateTime anchors an "HH:MM" slot time onto a calendar day, keeping
// the day's location.
func CombineDateTime(day time.Time, hhmm string) (time.Time, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("expected HH:MM, got %q", hhmm)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour %q", parts[0])
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute %q", parts[1])
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %q", hhmm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location()), nil
}

// CalculateEndTime adds a service duration to an "HH:MM" start time.
func CalculateEndTime(startTime string, durationMinutes int) string {
	parts := strings.Split(startTime, ":")
	if len(parts) != 2 {
		return startTime
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	total := hours*60 + minutes + durationMinutes
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// RequiredSlots returns how many fixed-granularity slots a service consumes.
func RequiredSlots(durationMinutes int) int {
	granularity := constvars.SlotGranularityMinutes
	return (durationMinutes + granularity - 1) / granularity
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
